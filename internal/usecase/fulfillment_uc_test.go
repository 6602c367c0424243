package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcosvidal/storeadmin/internal/adapters/repo/memory"
	"github.com/marcosvidal/storeadmin/internal/domain"
	"github.com/marcosvidal/storeadmin/internal/usecase"
)

func strptr(s string) *string { return &s }

// countingProducts wraps the in-memory repo to count archive calls.
type countingProducts struct {
	domain.ProductRepo
	archiveCalls int
}

func (c *countingProducts) ArchiveByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	c.archiveCalls++
	return c.ProductRepo.ArchiveByIDs(ctx, ids)
}

type capturingPublisher struct {
	events []domain.OrderPaidEvent
}

func (p *capturingPublisher) OrderPaid(evt domain.OrderPaidEvent) {
	p.events = append(p.events, evt)
}

// memDeduper records ids only when Mark is called, like the Redis adapter.
type memDeduper struct{ ids map[string]bool }

func newMemDeduper() *memDeduper { return &memDeduper{ids: map[string]bool{}} }

func (d *memDeduper) Seen(_ context.Context, id string) (bool, error) { return d.ids[id], nil }

func (d *memDeduper) Mark(_ context.Context, id string) error {
	d.ids[id] = true
	return nil
}

// failingProducts fails the first archive attempt, then delegates.
type failingProducts struct {
	domain.ProductRepo
	failures int
}

func (f *failingProducts) ArchiveByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if f.failures > 0 {
		f.failures--
		return 0, errors.New("archive unavailable")
	}
	return f.ProductRepo.ArchiveByIDs(ctx, ids)
}

// failingOrders fails the first MarkPaid attempt, then delegates.
type failingOrders struct {
	domain.OrderRepo
	failures int
}

func (f *failingOrders) MarkPaid(ctx context.Context, id uuid.UUID, address, phone string) (*domain.Order, error) {
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("orders unavailable")
	}
	return f.OrderRepo.MarkPaid(ctx, id, address, phone)
}

func seedUnpaidOrder(t *testing.T, orders *memory.OrderRepo, products *memory.ProductRepo) (*domain.Order, []uuid.UUID) {
	t.Helper()
	ctx := context.Background()
	storeID := uuid.New()

	var ids []uuid.UUID
	for _, name := range []string{"P1", "P2", "P3"} {
		p := &domain.Product{ID: uuid.New(), StoreID: storeID, Name: name}
		require.NoError(t, products.Create(ctx, p))
		ids = append(ids, p.ID)
	}

	order := &domain.Order{
		ID:      uuid.New(),
		StoreID: storeID,
		Items: []domain.OrderItem{
			{ID: uuid.New(), ProductID: ids[0]},
			{ID: uuid.New(), ProductID: ids[1]},
		},
	}
	require.NoError(t, orders.Create(ctx, order))
	return order, ids
}

func TestFulfillmentHappyPath(t *testing.T) {
	ctx := context.Background()
	orders := memory.NewOrderRepo()
	products := memory.NewProductRepo()
	pub := &capturingPublisher{}
	order, ids := seedUnpaidOrder(t, orders, products)

	uc := &usecase.Fulfillment{Orders: orders, Products: products, Events: pub}
	err := uc.HandlePaymentCompleted(ctx, domain.PaymentEvent{
		ID:      "evt_1",
		OrderID: order.ID,
		Phone:   strptr("+1 555 0100"),
		Address: domain.PostalAddress{
			Line1:      strptr("12 Main St"),
			City:       strptr("Springfield"),
			State:      strptr("IL"),
			PostalCode: strptr("62704"),
			Country:    strptr("US"),
		},
	})
	require.NoError(t, err)

	got, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPaid)
	assert.Equal(t, "12 Main St, Springfield, IL, 62704, US", got.Address)
	assert.Equal(t, "+1 555 0100", got.Phone)

	// Ordered products are archived, the bystander is not.
	for i, id := range ids {
		p, err := products.FindByID(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, i < 2, p.IsArchived, p.Name)
	}

	require.Len(t, pub.events, 1)
	assert.Equal(t, order.ID, pub.events[0].OrderID)
	assert.ElementsMatch(t, ids[:2], pub.events[0].ProductIDs)
}

func TestFulfillmentAddressKeepsEmptyComponents(t *testing.T) {
	ctx := context.Background()
	orders := memory.NewOrderRepo()
	products := memory.NewProductRepo()
	order, _ := seedUnpaidOrder(t, orders, products)

	uc := &usecase.Fulfillment{Orders: orders, Products: products}
	// Line2 absent is dropped; an empty-string city is a present component and
	// keeps its slot in the join. No phone means empty string.
	err := uc.HandlePaymentCompleted(ctx, domain.PaymentEvent{
		ID:      "evt_addr",
		OrderID: order.ID,
		Address: domain.PostalAddress{
			Line1:   strptr("12 Main St"),
			City:    strptr(""),
			Country: strptr("US"),
		},
	})
	require.NoError(t, err)

	got, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "12 Main St, , US", got.Address)
	assert.Equal(t, "", got.Phone)
}

func TestFulfillmentRedeliveryIsIdempotent(t *testing.T) {
	ctx := context.Background()
	orders := memory.NewOrderRepo()
	mem := memory.NewProductRepo()
	products := &countingProducts{ProductRepo: mem}
	pub := &capturingPublisher{}
	order, ids := seedUnpaidOrder(t, orders, mem)

	uc := &usecase.Fulfillment{Orders: orders, Products: products, Events: pub}
	evt := domain.PaymentEvent{ID: "evt_dup", OrderID: order.ID}
	require.NoError(t, uc.HandlePaymentCompleted(ctx, evt))
	require.NoError(t, uc.HandlePaymentCompleted(ctx, evt))

	got, err := orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPaid)
	p, err := mem.FindByID(ctx, ids[0])
	require.NoError(t, err)
	assert.True(t, p.IsArchived)
	assert.Len(t, pub.events, 1, "payment announced once")
}

func TestFulfillmentDedupShortCircuits(t *testing.T) {
	ctx := context.Background()
	orders := memory.NewOrderRepo()
	mem := memory.NewProductRepo()
	products := &countingProducts{ProductRepo: mem}
	pub := &capturingPublisher{}
	dedup := newMemDeduper()
	order, _ := seedUnpaidOrder(t, orders, mem)

	uc := &usecase.Fulfillment{Orders: orders, Products: products, Dedup: dedup, Events: pub}
	evt := domain.PaymentEvent{ID: "evt_seen", OrderID: order.ID}
	require.NoError(t, uc.HandlePaymentCompleted(ctx, evt))
	require.True(t, dedup.ids["evt_seen"], "successful run records the id")
	require.NoError(t, uc.HandlePaymentCompleted(ctx, evt))

	assert.Equal(t, 1, products.archiveCalls, "recorded event is skipped entirely")
	assert.Len(t, pub.events, 1)
}

func TestFulfillmentRetriesArchiveAfterFailure(t *testing.T) {
	ctx := context.Background()
	orders := memory.NewOrderRepo()
	mem := memory.NewProductRepo()
	products := &failingProducts{ProductRepo: mem, failures: 1}
	pub := &capturingPublisher{}
	order, ids := seedUnpaidOrder(t, orders, mem)

	uc := &usecase.Fulfillment{Orders: orders, Products: products, Events: pub}
	evt := domain.PaymentEvent{ID: "evt_retry", OrderID: order.ID}

	// The order goes paid but the archive fails: the run must error so the
	// provider redelivers, and nothing may be announced yet.
	require.Error(t, uc.HandlePaymentCompleted(ctx, evt))
	assert.Empty(t, pub.events)

	require.NoError(t, uc.HandlePaymentCompleted(ctx, evt))
	p, err := mem.FindByID(ctx, ids[0])
	require.NoError(t, err)
	assert.True(t, p.IsArchived, "redelivery completes the archive")
	assert.Len(t, pub.events, 1)
}

func TestFulfillmentRetriesMarkPaidAfterFailure(t *testing.T) {
	ctx := context.Background()
	mem := memory.NewOrderRepo()
	orders := &failingOrders{OrderRepo: mem, failures: 1}
	products := memory.NewProductRepo()
	dedup := newMemDeduper()
	order, _ := seedUnpaidOrder(t, mem, products)

	uc := &usecase.Fulfillment{Orders: orders, Products: products, Dedup: dedup}
	evt := domain.PaymentEvent{ID: "evt_flaky", OrderID: order.ID}

	// A failed run must not claim the event id, or the redelivery would be
	// skipped and the order never marked paid.
	require.Error(t, uc.HandlePaymentCompleted(ctx, evt))
	assert.False(t, dedup.ids["evt_flaky"])

	require.NoError(t, uc.HandlePaymentCompleted(ctx, evt))
	got, err := mem.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPaid, "redelivery completes the paid transition")
	assert.True(t, dedup.ids["evt_flaky"])
}

func TestFulfillmentUnknownOrder(t *testing.T) {
	ctx := context.Background()
	uc := &usecase.Fulfillment{Orders: memory.NewOrderRepo(), Products: memory.NewProductRepo()}

	err := uc.HandlePaymentCompleted(ctx, domain.PaymentEvent{ID: "evt_x", OrderID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = uc.HandlePaymentCompleted(ctx, domain.PaymentEvent{ID: "evt_y"})
	assert.ErrorIs(t, err, domain.ErrNotFound, "nil order id never resolves")
}
