package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marcosvidal/storeadmin/internal/domain"
)

type OrderRepo struct{ db *gorm.DB }

func NewOrderRepo(db *gorm.DB) *OrderRepo { return &OrderRepo{db: db} }

func (r *OrderRepo) Create(ctx context.Context, o *domain.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderRepo) ListByStore(ctx context.Context, storeID uuid.UUID) ([]domain.Order, error) {
	var list []domain.Order
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at desc").
		Preload("Items").Preload("Items.Product").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OrderRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var o domain.Order
	if err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepo) MarkPaid(ctx context.Context, id uuid.UUID, address, phone string) (*domain.Order, error) {
	res := r.db.WithContext(ctx).Model(&domain.Order{}).
		Where("id = ?", id).
		Updates(map[string]any{"is_paid": true, "address": address, "phone": phone})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.ErrNotFound
	}
	return r.FindByID(ctx, id)
}
