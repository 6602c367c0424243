// Package memory holds in-memory implementations of the repository ports,
// used by tests and by local development without a database.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/marcosvidal/storeadmin/internal/domain"
)

type StoreRepo struct {
	mu   sync.Mutex
	rows []*domain.Store
}

func NewStoreRepo() *StoreRepo { return &StoreRepo{} }

func (r *StoreRepo) Create(_ context.Context, s *domain.Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *s
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *StoreRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.rows {
		if s.ID == id {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *StoreRepo) FindByIDAndOwner(_ context.Context, id uuid.UUID, userID string) (*domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.rows {
		if s.ID == id && s.UserID == userID {
			cp := *s
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *StoreRepo) FindByOwner(_ context.Context, userID string) ([]domain.Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Store
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.rows[i].UserID == userID {
			out = append(out, *r.rows[i])
		}
	}
	return out, nil
}

func (r *StoreRepo) UpdateScoped(_ context.Context, id uuid.UUID, userID, name string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, s := range r.rows {
		if s.ID == id && s.UserID == userID {
			s.Name = name
			n++
		}
	}
	return n, nil
}

func (r *StoreRepo) DeleteScoped(_ context.Context, id uuid.UUID, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	kept := r.rows[:0]
	for _, s := range r.rows {
		if s.ID == id && s.UserID == userID {
			n++
			continue
		}
		kept = append(kept, s)
	}
	r.rows = kept
	return n, nil
}

// Catalog is the in-memory counterpart of the generic catalog repo. The two
// accessors tell it where a given entity keeps its key and store scope.
type Catalog[T any] struct {
	mu    sync.Mutex
	rows  []*T
	id    func(*T) uuid.UUID
	scope func(*T) uuid.UUID
}

func NewCatalog[T any](id, scope func(*T) uuid.UUID) *Catalog[T] {
	return &Catalog[T]{id: id, scope: scope}
}

func (r *Catalog[T]) ListByStore(_ context.Context, storeID uuid.UUID) ([]T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []T
	for i := len(r.rows) - 1; i >= 0; i-- {
		if r.scope(r.rows[i]) == storeID {
			out = append(out, *r.rows[i])
		}
	}
	return out, nil
}

func (r *Catalog[T]) FindByID(_ context.Context, id uuid.UUID) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.rows {
		if r.id(e) == id {
			cp := *e
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *Catalog[T]) Create(_ context.Context, e *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *e
	r.rows = append(r.rows, &cp)
	return nil
}

func (r *Catalog[T]) UpdateScoped(_ context.Context, id, storeID uuid.UUID, e *T) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, row := range r.rows {
		if r.id(row) == id && r.scope(row) == storeID {
			cp := *e
			r.rows[i] = &cp
			return 1, nil
		}
	}
	return 0, nil
}

func (r *Catalog[T]) DeleteScoped(_ context.Context, id, storeID uuid.UUID) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	kept := r.rows[:0]
	for _, row := range r.rows {
		if r.id(row) == id && r.scope(row) == storeID {
			n++
			continue
		}
		kept = append(kept, row)
	}
	r.rows = kept
	return n, nil
}

func NewBillboards() *Catalog[domain.Billboard] {
	return NewCatalog(
		func(b *domain.Billboard) uuid.UUID { return b.ID },
		func(b *domain.Billboard) uuid.UUID { return b.StoreID },
	)
}

func NewCategories() *Catalog[domain.Category] {
	return NewCatalog(
		func(c *domain.Category) uuid.UUID { return c.ID },
		func(c *domain.Category) uuid.UUID { return c.StoreID },
	)
}

func NewSizes() *Catalog[domain.Size] {
	return NewCatalog(
		func(s *domain.Size) uuid.UUID { return s.ID },
		func(s *domain.Size) uuid.UUID { return s.StoreID },
	)
}

func NewColors() *Catalog[domain.Color] {
	return NewCatalog(
		func(c *domain.Color) uuid.UUID { return c.ID },
		func(c *domain.Color) uuid.UUID { return c.StoreID },
	)
}
