package domain

import (
	"context"

	"github.com/google/uuid"
)

// StoreRepo is the tenant-root store. FindByIDAndOwner doubles as the
// ownership probe used to gate every child mutation.
type StoreRepo interface {
	Create(ctx context.Context, s *Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*Store, error)
	FindByIDAndOwner(ctx context.Context, id uuid.UUID, userID string) (*Store, error)
	FindByOwner(ctx context.Context, userID string) ([]Store, error)
	UpdateScoped(ctx context.Context, id uuid.UUID, userID, name string) (int64, error)
	DeleteScoped(ctx context.Context, id uuid.UUID, userID string) (int64, error)
}

// CatalogRepo is the shared persistence surface of the store-scoped catalog
// entities (billboards, categories, sizes, colors). The scoped mutations
// match on both entity id and store id so a guessed id from another tenant
// never changes a row.
type CatalogRepo[T any] interface {
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]T, error)
	FindByID(ctx context.Context, id uuid.UUID) (*T, error)
	Create(ctx context.Context, e *T) error
	UpdateScoped(ctx context.Context, id, storeID uuid.UUID, e *T) (int64, error)
	DeleteScoped(ctx context.Context, id, storeID uuid.UUID) (int64, error)
}

// ProductRepo extends the catalog shape with filtered listing, the wholesale
// image replace, and the fulfillment archive.
type ProductRepo interface {
	List(ctx context.Context, storeID uuid.UUID, f ProductFilter) ([]Product, error)
	ListAll(ctx context.Context, storeID uuid.UUID) ([]Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	Create(ctx context.Context, p *Product) error
	UpdateScoped(ctx context.Context, id, storeID uuid.UUID, p *Product) (int64, error)
	DeleteScoped(ctx context.Context, id, storeID uuid.UUID) (int64, error)
	ArchiveByIDs(ctx context.Context, ids []uuid.UUID) (int64, error)
}

type OrderRepo interface {
	Create(ctx context.Context, o *Order) error
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	// MarkPaid sets paid/address/phone and returns the updated order with its
	// items loaded. ErrNotFound when the id resolves to nothing.
	MarkPaid(ctx context.Context, id uuid.UUID, address, phone string) (*Order, error)
}

// PaymentGateway issues hosted checkout sessions for an order.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, o *Order, products []Product) (*CheckoutSession, error)
}

// EventPublisher fans a paid order out to downstream consumers. Implementations
// must not block the fulfillment path.
type EventPublisher interface {
	OrderPaid(evt OrderPaidEvent)
}
