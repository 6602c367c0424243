package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marcosvidal/storeadmin/internal/domain"
)

type StoreRepo struct{ db *gorm.DB }

func NewStoreRepo(db *gorm.DB) *StoreRepo { return &StoreRepo{db: db} }

func (r *StoreRepo) Create(ctx context.Context, s *domain.Store) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StoreRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Store, error) {
	var s domain.Store
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepo) FindByIDAndOwner(ctx context.Context, id uuid.UUID, userID string) (*domain.Store, error) {
	var s domain.Store
	if err := r.db.WithContext(ctx).First(&s, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepo) FindByOwner(ctx context.Context, userID string) ([]domain.Store, error) {
	var list []domain.Store
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *StoreRepo) UpdateScoped(ctx context.Context, id uuid.UUID, userID, name string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&domain.Store{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("name", name)
	return res.RowsAffected, res.Error
}

func (r *StoreRepo) DeleteScoped(ctx context.Context, id uuid.UUID, userID string) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&domain.Store{})
	return res.RowsAffected, res.Error
}
