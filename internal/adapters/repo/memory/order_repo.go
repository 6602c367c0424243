package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/marcosvidal/storeadmin/internal/domain"
)

type OrderRepo struct {
	mu   sync.Mutex
	rows []*domain.Order
}

func NewOrderRepo() *OrderRepo { return &OrderRepo{} }

func (r *OrderRepo) Create(_ context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *o
	cp.Items = append([]domain.OrderItem(nil), o.Items...)
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *OrderRepo) ListByStore(_ context.Context, storeID uuid.UUID) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Order
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].StoreID == storeID {
			out = append(out, *r.rows[i])
		}
	}
	return out, nil
}

func (r *OrderRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.rows {
		if o.ID == id {
			cp := *o
			cp.Items = append([]domain.OrderItem(nil), o.Items...)
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *OrderRepo) MarkPaid(_ context.Context, id uuid.UUID, address, phone string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, o := range r.rows {
		if o.ID == id {
			o.IsPaid = true
			o.Address = address
			o.Phone = phone
			cp := *o
			cp.Items = append([]domain.OrderItem(nil), o.Items...)
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}
