package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/marcosvidal/storeadmin/internal/domain"
)

type ProductRepo struct{ db *gorm.DB }

func NewProductRepo(db *gorm.DB) *ProductRepo { return &ProductRepo{db: db} }

// List is the public catalog listing: archived rows are always excluded,
// whatever the other filters say.
func (r *ProductRepo) List(ctx context.Context, storeID uuid.UUID, f domain.ProductFilter) ([]domain.Product, error) {
	q := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Where("is_archived = ?", false)
	if f.CategoryID != nil {
		q = q.Where("category_id = ?", *f.CategoryID)
	}
	if f.ColorID != nil {
		q = q.Where("color_id = ?", *f.ColorID)
	}
	if f.SizeID != nil {
		q = q.Where("size_id = ?", *f.SizeID)
	}
	if f.FeaturedOnly {
		q = q.Where("is_featured = ?", true)
	}
	var list []domain.Product
	err := q.Order("created_at desc").
		Preload("Images").Preload("Category").Preload("Size").Preload("Color").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListAll is the admin view behind the export: archived included.
func (r *ProductRepo) ListAll(ctx context.Context, storeID uuid.UUID) ([]domain.Product, error) {
	var list []domain.Product
	err := r.db.WithContext(ctx).
		Where("store_id = ?", storeID).
		Order("created_at desc").
		Preload("Images").Preload("Category").Preload("Size").Preload("Color").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (r *ProductRepo) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).
		Preload("Images").Preload("Category").Preload("Size").Preload("Color").
		First(&p, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *ProductRepo) Create(ctx context.Context, p *domain.Product) error {
	return r.db.WithContext(ctx).Create(p).Error
}

// UpdateScoped replaces the scalar fields and the whole image set in one
// transaction, closing the empty-image-set read window a two-call replace
// would leave open.
func (r *ProductRepo) UpdateScoped(ctx context.Context, id, storeID uuid.UUID, p *domain.Product) (int64, error) {
	var rows int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Product{}).
			Where("id = ? AND store_id = ?", id, storeID).
			Select("name", "price", "category_id", "size_id", "color_id", "is_featured", "is_archived").
			Updates(p)
		if res.Error != nil {
			return res.Error
		}
		rows = res.RowsAffected
		if rows == 0 {
			return nil
		}
		if err := tx.Where("product_id = ?", id).Delete(&domain.Image{}).Error; err != nil {
			return err
		}
		if len(p.Images) == 0 {
			return nil
		}
		imgs := make([]domain.Image, len(p.Images))
		copy(imgs, p.Images)
		for i := range imgs {
			if imgs[i].ID == uuid.Nil {
				imgs[i].ID = uuid.New()
			}
			imgs[i].ProductID = id
		}
		return tx.Create(&imgs).Error
	})
	return rows, err
}

func (r *ProductRepo) DeleteScoped(ctx context.Context, id, storeID uuid.UUID) (int64, error) {
	var rows int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND store_id = ?", id, storeID).Delete(&domain.Product{})
		if res.Error != nil {
			return res.Error
		}
		rows = res.RowsAffected
		if rows == 0 {
			return nil
		}
		return tx.Where("product_id = ?", id).Delete(&domain.Image{}).Error
	})
	return rows, err
}

func (r *ProductRepo) ArchiveByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&domain.Product{}).
		Where("id IN ?", ids).
		Update("is_archived", true)
	return res.RowsAffected, res.Error
}
