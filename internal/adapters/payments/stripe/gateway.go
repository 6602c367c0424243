package stripe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	stripego "github.com/stripe/stripe-go/v80"
	"github.com/stripe/stripe-go/v80/checkout/session"
	"github.com/stripe/stripe-go/v80/webhook"

	"github.com/marcosvidal/storeadmin/internal/domain"
)

// Gateway wraps Stripe checkout sessions and webhook verification. The
// webhook secret is the trust boundary: an event that fails ConstructEvent
// never reaches the fulfillment usecase.
type Gateway struct {
	webhookSecret string
	frontendURL   string
}

func New(secretKey, webhookSecret, frontendURL string) *Gateway {
	stripego.Key = secretKey
	return &Gateway{webhookSecret: webhookSecret, frontendURL: frontendURL}
}

func (g *Gateway) CreateCheckoutSession(ctx context.Context, o *domain.Order, products []domain.Product) (*domain.CheckoutSession, error) {
	if stripego.Key == "" {
		return nil, errors.New("stripe secret key missing (STRIPE_SECRET_KEY)")
	}
	items := make([]*stripego.CheckoutSessionLineItemParams, 0, len(products))
	cents := decimal.NewFromInt(100)
	for _, p := range products {
		items = append(items, &stripego.CheckoutSessionLineItemParams{
			Quantity: stripego.Int64(1),
			PriceData: &stripego.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripego.String("usd"),
				UnitAmount: stripego.Int64(p.Price.Mul(cents).IntPart()),
				ProductData: &stripego.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripego.String(p.Name),
				},
			},
		})
	}
	params := &stripego.CheckoutSessionParams{
		Mode:                     stripego.String(string(stripego.CheckoutSessionModePayment)),
		LineItems:                items,
		BillingAddressCollection: stripego.String("required"),
		PhoneNumberCollection: &stripego.CheckoutSessionPhoneNumberCollectionParams{
			Enabled: stripego.Bool(true),
		},
		SuccessURL: stripego.String(g.frontendURL + "/cart?success=1"),
		CancelURL:  stripego.String(g.frontendURL + "/cart?canceled=1"),
	}
	params.Context = ctx
	params.AddMetadata("orderId", o.ID.String())

	s, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}
	return &domain.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

// sessionPayload is decoded from the raw event instead of the SDK's typed
// session so that null and empty-string address components stay apart; only
// truly absent ones are dropped from the derived address.
type sessionPayload struct {
	Metadata        map[string]string `json:"metadata"`
	CustomerDetails *struct {
		Phone   *string `json:"phone"`
		Address *struct {
			Line1      *string `json:"line1"`
			Line2      *string `json:"line2"`
			City       *string `json:"city"`
			State      *string `json:"state"`
			PostalCode *string `json:"postal_code"`
			Country    *string `json:"country"`
		} `json:"address"`
	} `json:"customer_details"`
}

// ParseEvent verifies the signature and maps a checkout.session.completed
// event to a PaymentEvent. A nil event with nil error means the type is one
// this service ignores.
func (g *Gateway) ParseEvent(payload []byte, sigHeader string) (*domain.PaymentEvent, error) {
	// The endpoint's pinned API version can differ from the SDK's; the
	// signature check is what establishes trust, not the version field.
	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, g.webhookSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, fmt.Errorf("verify webhook signature: %w", err)
	}
	if string(event.Type) != "checkout.session.completed" {
		return nil, nil
	}

	var sess sessionPayload
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}

	evt := &domain.PaymentEvent{ID: event.ID}
	if raw, ok := sess.Metadata["orderId"]; ok {
		if id, err := uuid.Parse(raw); err == nil {
			evt.OrderID = id
		}
	}
	if cd := sess.CustomerDetails; cd != nil {
		evt.Phone = cd.Phone
		if a := cd.Address; a != nil {
			evt.Address = domain.PostalAddress{
				Line1:      a.Line1,
				Line2:      a.Line2,
				City:       a.City,
				State:      a.State,
				PostalCode: a.PostalCode,
				Country:    a.Country,
			}
		}
	}
	return evt, nil
}
