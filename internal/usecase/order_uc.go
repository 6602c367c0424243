package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/marcosvidal/storeadmin/internal/domain"
)

// Orders is the admin-side order view. Orders carry customer PII, so the
// listing is owner-gated, unlike the catalog reads.
type Orders struct {
	Repo  domain.OrderRepo
	Guard *Guard
}

func (u *Orders) ListByStore(ctx context.Context, userID string, storeID uuid.UUID) ([]domain.Order, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}
	if storeID == uuid.Nil {
		return nil, domain.Invalid("Store id is required")
	}
	if err := u.Guard.authorize(ctx, userID, storeID); err != nil {
		return nil, err
	}
	return u.Repo.ListByStore(ctx, storeID)
}
