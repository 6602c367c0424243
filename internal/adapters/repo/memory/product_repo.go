package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/marcosvidal/storeadmin/internal/domain"
)

type ProductRepo struct {
	mu   sync.Mutex
	rows []*domain.Product
}

func NewProductRepo() *ProductRepo { return &ProductRepo{} }

func (r *ProductRepo) List(_ context.Context, storeID uuid.UUID, f domain.ProductFilter) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Product
	for i := len(r.rows) - 1; i >= 0; i-- {
		p := r.rows[i]
		if p.StoreID != storeID || p.IsArchived {
			continue
		}
		if f.CategoryID != nil && p.CategoryID != *f.CategoryID {
			continue
		}
		if f.ColorID != nil && p.ColorID != *f.ColorID {
			continue
		}
		if f.SizeID != nil && p.SizeID != *f.SizeID {
			continue
		}
		if f.FeaturedOnly && !p.IsFeatured {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (r *ProductRepo) ListAll(_ context.Context, storeID uuid.UUID) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Product
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].StoreID == storeID {
			out = append(out, *r.rows[i])
		}
	}
	return out, nil
}

func (r *ProductRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.rows {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *ProductRepo) Create(_ context.Context, p *domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *ProductRepo) UpdateScoped(_ context.Context, id, storeID uuid.UUID, p *domain.Product) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if row.ID == id && row.StoreID == storeID {
			cp := *p
			cp.CreatedAt = row.CreatedAt
			r.rows[i] = &cp
			return 1, nil
		}
	}
	return 0, nil
}

func (r *ProductRepo) DeleteScoped(_ context.Context, id, storeID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	kept := r.rows[:0]
	for _, row := range r.rows {
		if row.ID == id && row.StoreID == storeID {
			n++
			continue
		}
		kept = append(kept, row)
	}
	r.rows = kept
	return n, nil
}

func (r *ProductRepo) ArchiveByIDs(_ context.Context, ids []uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, row := range r.rows {
		for _, id := range ids {
			if row.ID == id {
				row.IsArchived = true
				n++
			}
		}
	}
	return n, nil
}
