package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/marcosvidal/storeadmin/internal/domain"
)

// Deduper remembers fully processed webhook event ids. Seen never claims an
// id; Mark records one only after the whole run succeeded, so a failed run
// stays retryable. A nil Deduper (or a failing one) falls back to the order's
// paid-state guard.
type Deduper interface {
	Seen(ctx context.Context, eventID string) (bool, error)
	Mark(ctx context.Context, eventID string) error
}

// Fulfillment consumes verified checkout-completed events. Observable side
// effects are the order's paid transition and the archive flag on its
// products; both re-run safely on redelivery, so any failure returns an
// error and lets the provider retry the whole event.
type Fulfillment struct {
	Orders   domain.OrderRepo
	Products domain.ProductRepo
	Dedup    Deduper
	Events   domain.EventPublisher
}

func (u *Fulfillment) HandlePaymentCompleted(ctx context.Context, evt domain.PaymentEvent) error {
	if evt.OrderID == uuid.Nil {
		return fmt.Errorf("payment event %s: %w", evt.ID, domain.ErrNotFound)
	}

	if u.Dedup != nil && evt.ID != "" {
		seen, err := u.Dedup.Seen(ctx, evt.ID)
		if err != nil {
			log.Warn().Err(err).Str("event_id", evt.ID).Msg("dedup check failed, continuing")
		} else if seen {
			log.Info().Str("event_id", evt.ID).Msg("duplicate payment event, skipping")
			return nil
		}
	}

	existing, err := u.Orders.FindByID(ctx, evt.OrderID)
	if err != nil {
		return fmt.Errorf("load order %s: %w", evt.OrderID, err)
	}
	alreadyPaid := existing.IsPaid

	phone := ""
	if evt.Phone != nil {
		phone = *evt.Phone
	}
	order, err := u.Orders.MarkPaid(ctx, evt.OrderID, evt.Address.String(), phone)
	if err != nil {
		return fmt.Errorf("mark order %s paid: %w", evt.OrderID, err)
	}

	// The archive always runs, even on redelivery: setting the flag again is
	// harmless, while skipping it could leave a purchased product on sale if
	// an earlier attempt failed after the paid transition.
	ids := order.ProductIDs()
	if len(ids) > 0 {
		if _, err := u.Products.ArchiveByIDs(ctx, ids); err != nil {
			return fmt.Errorf("archive products for order %s: %w", order.ID, err)
		}
	}

	// The paid guard only suppresses a duplicate announcement.
	if !alreadyPaid && u.Events != nil {
		u.Events.OrderPaid(domain.OrderPaidEvent{
			OrderID:    order.ID,
			StoreID:    order.StoreID,
			ProductIDs: ids,
			OccurredAt: time.Now().UTC(),
		})
	}

	// Record the event id last, once everything above stuck. A crash before
	// this point leaves the id unclaimed and the redelivery does the work.
	if u.Dedup != nil && evt.ID != "" {
		if err := u.Dedup.Mark(ctx, evt.ID); err != nil {
			log.Warn().Err(err).Str("event_id", evt.ID).Msg("dedup mark failed")
		}
	}
	return nil
}
