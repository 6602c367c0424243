package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marcosvidal/storeadmin/internal/domain"
)

// CatalogRepo is the shared gorm implementation behind billboards,
// categories, sizes and colors. Preloads configure nested reads (a category
// is served with its billboard).
type CatalogRepo[T any] struct {
	db       *gorm.DB
	preloads []string
}

func NewCatalogRepo[T any](db *gorm.DB, preloads ...string) *CatalogRepo[T] {
	return &CatalogRepo[T]{db: db, preloads: preloads}
}

func (r *CatalogRepo[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.preloads {
		q = q.Preload(p)
	}
	return q
}

func (r *CatalogRepo[T]) ListByStore(ctx context.Context, storeID uuid.UUID) ([]T, error) {
	var list []T
	if err := r.query(ctx).Where("store_id = ?", storeID).Order("created_at desc").Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *CatalogRepo[T]) FindByID(ctx context.Context, id uuid.UUID) (*T, error) {
	var e T
	if err := r.query(ctx).First(&e, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *CatalogRepo[T]) Create(ctx context.Context, e *T) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// UpdateScoped matches on both id and store id so an id guessed from another
// tenant never changes a row.
func (r *CatalogRepo[T]) UpdateScoped(ctx context.Context, id, storeID uuid.UUID, e *T) (int64, error) {
	res := r.db.WithContext(ctx).Model(new(T)).
		Where("id = ? AND store_id = ?", id, storeID).
		Select("*").Omit("id", "store_id", "created_at").
		Updates(e)
	return res.RowsAffected, res.Error
}

func (r *CatalogRepo[T]) DeleteScoped(ctx context.Context, id, storeID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ? AND store_id = ?", id, storeID).Delete(new(T))
	return res.RowsAffected, res.Error
}
