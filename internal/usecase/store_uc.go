package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/marcosvidal/storeadmin/internal/domain"
)

// Stores manages the tenant roots. No ownership guard on create: the caller
// becomes the owner. Update/delete match on (id, userId) directly.
type Stores struct {
	Repo domain.StoreRepo
}

func (u *Stores) Create(ctx context.Context, userID, name string) (*domain.Store, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.Invalid("Name is required")
	}
	s := &domain.Store{ID: uuid.New(), UserID: userID, Name: name}
	if err := u.Repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (u *Stores) ListByOwner(ctx context.Context, userID string) ([]domain.Store, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	return u.Repo.FindByOwner(ctx, userID)
}

func (u *Stores) Update(ctx context.Context, userID string, storeID uuid.UUID, name string) (*domain.Store, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(name) == "" {
		return nil, domain.Invalid("Name is required")
	}
	if storeID == uuid.Nil {
		return nil, domain.Invalid("Store id is required")
	}
	rows, err := u.Repo.UpdateScoped(ctx, storeID, userID, name)
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, domain.ErrNotFound
	}
	return u.Repo.FindByID(ctx, storeID)
}

// Delete does not cascade. Children are removed first by the operator; a
// store with surviving children simply keeps them dangling-free by failing
// the caller's own sequencing, not ours.
func (u *Stores) Delete(ctx context.Context, userID string, storeID uuid.UUID) (int64, error) {
	if userID == "" {
		return 0, domain.ErrUnauthenticated
	}
	if storeID == uuid.Nil {
		return 0, domain.Invalid("Store id is required")
	}
	return u.Repo.DeleteScoped(ctx, storeID, userID)
}
