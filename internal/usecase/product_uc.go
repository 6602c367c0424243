package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marcosvidal/storeadmin/internal/domain"
)

// ProductInput is the mutation payload shared by create and update.
type ProductInput struct {
	Name       string
	Price      decimal.Decimal
	CategoryID uuid.UUID
	SizeID     uuid.UUID
	ColorID    uuid.UUID
	ImageURLs  []string
	IsFeatured bool
	IsArchived bool
}

// Products is the product specialization of the catalog template: same
// validation sequence, plus reference fields, a required image set, filtered
// public listing, and the wholesale image replace on update.
type Products struct {
	Repo  domain.ProductRepo
	Guard *Guard
}

func (u *Products) List(ctx context.Context, storeID uuid.UUID, f domain.ProductFilter) ([]domain.Product, error) {
	if storeID == uuid.Nil {
		return nil, domain.Invalid("Store id is required")
	}
	return u.Repo.List(ctx, storeID, f)
}

func (u *Products) Get(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	if id == uuid.Nil {
		return nil, domain.Invalid("Product id is required")
	}
	return u.Repo.FindByID(ctx, id)
}

func (u *Products) Create(ctx context.Context, userID string, storeID uuid.UUID, in ProductInput) (*domain.Product, error) {
	if err := validateProduct(userID, in); err != nil {
		return nil, err
	}
	if storeID == uuid.Nil {
		return nil, domain.Invalid("Store id is required")
	}
	if err := u.Guard.authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}
	p := in.toProduct(uuid.New(), storeID)
	if err := u.Repo.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *Products) Update(ctx context.Context, userID string, storeID, id uuid.UUID, in ProductInput) (*domain.Product, error) {
	if err := validateProduct(userID, in); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, domain.Invalid("Product id is required")
	}
	if err := u.Guard.authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}
	rows, err := u.Repo.UpdateScoped(ctx, id, storeID, in.toProduct(id, storeID))
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrNotFound
	}
	return u.Repo.FindByID(ctx, id)
}

func (u *Products) Delete(ctx context.Context, userID string, storeID, id uuid.UUID) (int64, error) {
	if userID == "" {
		return 0, domain.ErrUnauthenticated
	}
	if id == uuid.Nil {
		return 0, domain.Invalid("Product id is required")
	}
	if err := u.Guard.authorize(ctx, userID, storeID); err != nil {
		return 0, err
	}
	return u.Repo.DeleteScoped(ctx, id, storeID)
}

// Export is the owner-gated full listing behind the xlsx download; unlike the
// public list it includes archived rows.
func (u *Products) Export(ctx context.Context, userID string, storeID uuid.UUID) ([]domain.Product, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if storeID == uuid.Nil {
		return nil, domain.Invalid("Store id is required")
	}
	if err := u.Guard.authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}
	return u.Repo.ListAll(ctx, storeID)
}

// validateProduct runs the required checks in the declaration order of the
// payload; the first missing field is the one reported.
func validateProduct(userID string, in ProductInput) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	switch {
	case strings.TrimSpace(in.Name) == "":
		return domain.Invalid("Name is required")
	case in.Price.IsZero():
		return domain.Invalid("Price is required")
	case in.CategoryID == uuid.Nil:
		return domain.Invalid("Category id is required")
	case in.SizeID == uuid.Nil:
		return domain.Invalid("Size id is required")
	case in.ColorID == uuid.Nil:
		return domain.Invalid("Color id is required")
	case len(in.ImageURLs) == 0:
		return domain.Invalid("Images are required")
	}
	return nil
}

func (in ProductInput) toProduct(id, storeID uuid.UUID) *domain.Product {
	imgs := make([]domain.Image, 0, len(in.ImageURLs))
	for _, url := range in.ImageURLs {
		imgs = append(imgs, domain.Image{ID: uuid.New(), ProductID: id, URL: url, CreatedAt: time.Now()})
	}
	return &domain.Product{
		ID:         id,
		StoreID:    storeID,
		CategoryID: in.CategoryID,
		SizeID:     in.SizeID,
		ColorID:    in.ColorID,
		Name:       in.Name,
		Price:      in.Price,
		IsFeatured: in.IsFeatured,
		IsArchived: in.IsArchived,
		Images:     imgs,
	}
}
