package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/marcosvidal/storeadmin/internal/domain"
)

// Checkout starts a payment for a set of products: records an unpaid order
// and asks the gateway for a hosted session. The storefront calls this
// anonymously; the order only becomes meaningful once the webhook confirms
// payment.
type Checkout struct {
	Products domain.ProductRepo
	Orders   domain.OrderRepo
	Gateway  domain.PaymentGateway
}

func (u *Checkout) Start(ctx context.Context, storeID uuid.UUID, productIDs []uuid.UUID) (*domain.CheckoutSession, error) {
	if storeID == uuid.Nil {
		return nil, domain.Invalid("Store id is required")
	}
	if len(productIDs) == 0 {
		return nil, domain.Invalid("Product ids are required")
	}

	products := make([]domain.Product, 0, len(productIDs))
	for _, id := range productIDs {
		p, err := u.Products.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load product %s: %w", id, err)
		}
		products = append(products, *p)
	}

	order := &domain.Order{ID: uuid.New(), StoreID: storeID}
	for _, p := range products {
		order.Items = append(order.Items, domain.OrderItem{ID: uuid.New(), OrderID: order.ID, ProductID: p.ID})
	}
	if err := u.Orders.Create(ctx, order); err != nil {
		return nil, err
	}

	return u.Gateway.CreateCheckoutSession(ctx, order, products)
}
