package usecase

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/marcosvidal/storeadmin/internal/domain"
)

// Guard answers "does this user own this store". Every mutating operation on
// a child entity runs through it before touching the database.
type Guard struct {
	Stores domain.StoreRepo
}

func (g *Guard) Owns(ctx context.Context, userID string, storeID uuid.UUID) (bool, error) {
	_, err := g.Stores.FindByIDAndOwner(ctx, storeID, userID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// authorize converts a failed ownership probe into ErrUnauthorized.
func (g *Guard) authorize(ctx context.Context, userID string, storeID uuid.UUID) error {
	ok, err := g.Owns(ctx, userID, storeID)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrUnauthorized
	}
	return nil
}
