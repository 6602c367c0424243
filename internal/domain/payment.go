package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// PostalAddress mirrors the provider's customer-details address sub-object.
// Pointer fields keep the null/empty-string distinction from the wire: only
// a truly absent component is dropped from the derived string.
type PostalAddress struct {
	Line1      *string
	Line2      *string
	City       *string
	State      *string
	PostalCode *string
	Country    *string
}

// String joins the present components with ", " in fixed order.
func (a PostalAddress) String() string {
	components := []*string{a.Line1, a.Line2, a.City, a.State, a.PostalCode, a.Country}
	parts := make([]string, 0, len(components))
	for _, c := range components {
		if c != nil {
			parts = append(parts, *c)
		}
	}
	return strings.Join(parts, ", ")
}

// PaymentEvent is a signature-verified checkout-completed notification.
// Trust is established at the webhook boundary; downstream code only checks
// data shape.
type PaymentEvent struct {
	ID      string
	OrderID uuid.UUID
	Phone   *string
	Address PostalAddress
}

// CheckoutSession is the gateway's hosted-payment handle returned to the
// storefront.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// OrderPaidEvent is published after a successful fulfillment run.
type OrderPaidEvent struct {
	OrderID    uuid.UUID   `json:"orderId"`
	StoreID    uuid.UUID   `json:"storeId"`
	ProductIDs []uuid.UUID `json:"productIds"`
	OccurredAt time.Time   `json:"occurredAt"`
}
