package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/marcosvidal/storeadmin/internal/domain"
)

// Check is one ordered required-field rule. Rules run in declaration order
// and the first missing field wins, so error reporting stays stable across
// entity kinds.
type Check[T any] struct {
	Message string
	Missing func(*T) bool
}

// Descriptor configures the catalog service for one entity kind.
type Descriptor[T any] struct {
	// Kind is the display name used in id-missing errors ("Billboard").
	Kind string
	// Required holds the field rules in declaration order.
	Required []Check[T]
	// Validate runs after the required checks for format rules (hex colors).
	Validate func(*T) error
	// Stamp assigns the key and store scope to a new or replacing row.
	Stamp func(e *T, id, storeID uuid.UUID)
}

// Catalog implements list/get/create/update/delete for one store-scoped
// entity kind. The mutation sequence is fixed: caller identity, required
// fields in order, path identifier, ownership, then the store operation.
// Reads are caller-agnostic so the public storefront can consume them.
type Catalog[T any] struct {
	desc  Descriptor[T]
	repo  domain.CatalogRepo[T]
	guard *Guard
}

func NewCatalog[T any](desc Descriptor[T], repo domain.CatalogRepo[T], guard *Guard) *Catalog[T] {
	return &Catalog[T]{desc: desc, repo: repo, guard: guard}
}

func (c *Catalog[T]) List(ctx context.Context, storeID uuid.UUID) ([]T, error) {
	if storeID == uuid.Nil {
		return nil, domain.Invalid("Store id is required")
	}
	return c.repo.ListByStore(ctx, storeID)
}

func (c *Catalog[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	if id == uuid.Nil {
		return nil, domain.Invalid(c.desc.Kind + " id is required")
	}
	return c.repo.FindByID(ctx, id)
}

func (c *Catalog[T]) Create(ctx context.Context, userID string, storeID uuid.UUID, in *T) (*T, error) {
	if err := c.validate(userID, in); err != nil {
		return nil, err
	}
	if storeID == uuid.Nil {
		return nil, domain.Invalid("Store id is required")
	}
	if err := c.guard.authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}
	c.desc.Stamp(in, uuid.New(), storeID)
	if err := c.repo.Create(ctx, in); err != nil {
		return nil, err
	}
	return in, nil
}

func (c *Catalog[T]) Update(ctx context.Context, userID string, storeID, id uuid.UUID, in *T) (*T, error) {
	if err := c.validate(userID, in); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, domain.Invalid(c.desc.Kind + " id is required")
	}
	if err := c.guard.authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}
	c.desc.Stamp(in, id, storeID)
	rows, err := c.repo.UpdateScoped(ctx, id, storeID, in)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrNotFound
	}
	return c.repo.FindByID(ctx, id)
}

// Delete returns the affected-row count; deleting an id that matches nothing
// in this store is not an error, matching the scoped bulk-delete semantics.
func (c *Catalog[T]) Delete(ctx context.Context, userID string, storeID, id uuid.UUID) (int64, error) {
	if userID == "" {
		return 0, domain.ErrUnauthenticated
	}
	if id == uuid.Nil {
		return 0, domain.Invalid(c.desc.Kind + " id is required")
	}
	if err := c.guard.authorize(ctx, userID, storeID); err != nil {
		return 0, err
	}
	return c.repo.DeleteScoped(ctx, id, storeID)
}

func (c *Catalog[T]) validate(userID string, in *T) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}
	for _, chk := range c.desc.Required {
		if chk.Missing(in) {
			return domain.Invalid(chk.Message)
		}
	}
	if c.desc.Validate != nil {
		return c.desc.Validate(in)
	}
	return nil
}
