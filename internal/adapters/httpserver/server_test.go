package httpserver_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcosvidal/storeadmin/internal/adapters/auth"
	"github.com/marcosvidal/storeadmin/internal/adapters/httpserver"
	"github.com/marcosvidal/storeadmin/internal/adapters/repo/memory"
	"github.com/marcosvidal/storeadmin/internal/domain"
	"github.com/marcosvidal/storeadmin/internal/usecase"
)

// parserFunc adapts a closure to the webhook parser boundary.
type parserFunc func(payload []byte, sig string) (*domain.PaymentEvent, error)

func (f parserFunc) ParseEvent(payload []byte, sig string) (*domain.PaymentEvent, error) {
	return f(payload, sig)
}

type stubGateway struct{}

func (stubGateway) CreateCheckoutSession(_ context.Context, order *domain.Order, _ []domain.Product) (*domain.CheckoutSession, error) {
	return &domain.CheckoutSession{ID: "cs_" + order.ID.String(), URL: "https://pay.example/" + order.ID.String()}, nil
}

type env struct {
	handler http.Handler
	auth    *auth.Service
	orders  *memory.OrderRepo
	parse   parserFunc
}

func newEnv(t *testing.T) *env {
	t.Helper()
	stores := memory.NewStoreRepo()
	products := memory.NewProductRepo()
	orders := memory.NewOrderRepo()
	guard := &usecase.Guard{Stores: stores}
	authSvc := auth.New("test-secret")

	e := &env{auth: authSvc, orders: orders}
	e.handler = httpserver.New(httpserver.Deps{
		Stores:      &usecase.Stores{Repo: stores},
		Billboards:  usecase.NewBillboards(memory.NewBillboards(), guard),
		Categories:  usecase.NewCategories(memory.NewCategories(), guard),
		Sizes:       usecase.NewSizes(memory.NewSizes(), guard),
		Colors:      usecase.NewColors(memory.NewColors(), guard),
		Products:    &usecase.Products{Repo: products, Guard: guard},
		Orders:      &usecase.Orders{Repo: orders, Guard: guard},
		Checkout:    &usecase.Checkout{Products: products, Orders: orders, Gateway: stubGateway{}},
		Fulfillment: &usecase.Fulfillment{Orders: orders, Products: products},
		Webhooks: parserFunc(func(payload []byte, sig string) (*domain.PaymentEvent, error) {
			if e.parse == nil {
				return nil, fmt.Errorf("no parser configured")
			}
			return e.parse(payload, sig)
		}),
		Auth:        authSvc,
		AdminAPIKey: "admin-key",
	})
	return e
}

func (e *env) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *env) token(t *testing.T, userID string) string {
	t.Helper()
	tok, _, err := e.auth.Issue(userID, time.Hour)
	require.NoError(t, err)
	return tok
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestOwnershipAcrossUsers(t *testing.T) {
	e := newEnv(t)
	u1 := e.token(t, "user_1")
	u2 := e.token(t, "user_2")

	rec := e.do(t, http.MethodPost, "/api/stores/", u1, map[string]string{"name": "Main"})
	require.Equal(t, http.StatusOK, rec.Code)
	store := decode[domain.Store](t, rec)

	base := "/api/stores/" + store.ID.String() + "/billboards"
	rec = e.do(t, http.MethodPost, base+"/", u1, map[string]string{"label": "Summer", "imageUrl": "https://cdn/s.png"})
	require.Equal(t, http.StatusOK, rec.Code)
	bb := decode[domain.Billboard](t, rec)

	// Another authenticated user cannot touch it, and the row is untouched.
	rec = e.do(t, http.MethodPatch, base+"/"+bb.ID.String(), u2, map[string]string{"label": "Stolen", "imageUrl": "https://cdn/x.png"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = e.do(t, http.MethodGet, base+"/"+bb.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Summer", decode[domain.Billboard](t, rec).Label)

	// The owner can, and the anonymous read sees the new label.
	rec = e.do(t, http.MethodPatch, base+"/"+bb.ID.String(), u1, map[string]string{"label": "Winter", "imageUrl": "https://cdn/s.png"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = e.do(t, http.MethodGet, base+"/"+bb.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Winter", decode[domain.Billboard](t, rec).Label)
}

func TestStatusContract(t *testing.T) {
	e := newEnv(t)
	u1 := e.token(t, "user_1")

	rec := e.do(t, http.MethodPost, "/api/stores/", u1, map[string]string{"name": "Main"})
	require.Equal(t, http.StatusOK, rec.Code)
	store := decode[domain.Store](t, rec)
	base := "/api/stores/" + store.ID.String()

	// Anonymous mutation: 401 before validation.
	rec = e.do(t, http.MethodPost, base+"/sizes/", "", map[string]string{})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Missing field: 400 with the field message.
	rec = e.do(t, http.MethodPost, base+"/sizes/", u1, map[string]string{"value": "L"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Name is required", decode[map[string]string](t, rec)["error"])

	// Malformed path id on a valid payload: 400 with the id message.
	rec = e.do(t, http.MethodPatch, base+"/sizes/not-a-uuid", u1, map[string]string{"name": "Large", "value": "L"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Size id is required", decode[map[string]string](t, rec)["error"])

	// Well-formed but unknown id inside the caller's store: 404.
	rec = e.do(t, http.MethodPatch, base+"/sizes/7b6c4a1e-58f6-4c2e-9f1d-1a2b3c4d5e6f", u1, map[string]string{"name": "Large", "value": "L"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// Delete of a missing row is a 200 no-op.
	rec = e.do(t, http.MethodDelete, base+"/sizes/7b6c4a1e-58f6-4c2e-9f1d-1a2b3c4d5e6f", u1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, decode[map[string]int64](t, rec)["deleted"])
}

func TestProductRoutes(t *testing.T) {
	e := newEnv(t)
	u1 := e.token(t, "user_1")

	rec := e.do(t, http.MethodPost, "/api/stores/", u1, map[string]string{"name": "Main"})
	store := decode[domain.Store](t, rec)
	base := "/api/stores/" + store.ID.String()

	rec = e.do(t, http.MethodPost, base+"/categories/", u1, map[string]string{"name": "Shoes", "billboardId": "7b6c4a1e-58f6-4c2e-9f1d-1a2b3c4d5e6f"})
	require.Equal(t, http.StatusOK, rec.Code)
	cat := decode[domain.Category](t, rec)
	rec = e.do(t, http.MethodPost, base+"/sizes/", u1, map[string]string{"name": "Large", "value": "L"})
	require.Equal(t, http.StatusOK, rec.Code)
	size := decode[domain.Size](t, rec)
	rec = e.do(t, http.MethodPost, base+"/colors/", u1, map[string]string{"name": "Red", "value": "#ff0000"})
	require.Equal(t, http.StatusOK, rec.Code)
	color := decode[domain.Color](t, rec)

	payload := map[string]any{
		"name":       "Sneaker",
		"price":      "49.90",
		"categoryId": cat.ID.String(),
		"sizeId":     size.ID.String(),
		"colorId":    color.ID.String(),
		"images":     []map[string]string{{"url": "https://cdn/a.png"}},
		"isFeatured": true,
	}
	rec = e.do(t, http.MethodPost, base+"/products/", u1, payload)
	require.Equal(t, http.StatusOK, rec.Code)
	prod := decode[domain.Product](t, rec)

	// A malformed reference id reads as missing and names the field.
	bad := map[string]any{}
	for k, v := range payload {
		bad[k] = v
	}
	bad["colorId"] = "nope"
	rec = e.do(t, http.MethodPost, base+"/products/", u1, bad)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Color id is required", decode[map[string]string](t, rec)["error"])

	// Featured filter is presence-only: any value means "featured only".
	rec = e.do(t, http.MethodGet, base+"/products/?isFeatured=false", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	listed := decode[[]domain.Product](t, rec)
	require.Len(t, listed, 1)
	assert.Equal(t, prod.ID, listed[0].ID)

	// A malformed filter id matches nothing; it must never widen the listing.
	rec = e.do(t, http.MethodGet, base+"/products/?categoryId=not-a-uuid", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decode[[]domain.Product](t, rec))

	rec = e.do(t, http.MethodGet, base+"/products/?categoryId="+cat.ID.String(), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]domain.Product](t, rec), 1)

	rec = e.do(t, http.MethodGet, base+"/products/export", u1, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheet")

	// Checkout is anonymous; it records the order and returns the session.
	rec = e.do(t, http.MethodPost, base+"/checkout", "", map[string]any{"productIds": []string{prod.ID.String()}})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, decode[domain.CheckoutSession](t, rec).URL, "https://pay.example/")
}

func TestWebhookStatuses(t *testing.T) {
	e := newEnv(t)

	e.parse = func([]byte, string) (*domain.PaymentEvent, error) {
		return nil, fmt.Errorf("bad signature")
	}
	rec := e.do(t, http.MethodPost, "/webhook", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// Ignored event types ack without side effects.
	e.parse = func([]byte, string) (*domain.PaymentEvent, error) { return nil, nil }
	rec = e.do(t, http.MethodPost, "/webhook", "", map[string]string{})
	assert.Equal(t, http.StatusOK, rec.Code)

	// A verified event for an unknown order fails processing so the provider
	// redelivers.
	evt := &domain.PaymentEvent{ID: "evt_1", OrderID: uuid.New()}
	e.parse = func([]byte, string) (*domain.PaymentEvent, error) { return evt, nil }
	rec = e.do(t, http.MethodPost, "/webhook", "", map[string]string{})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestIssueToken(t *testing.T) {
	e := newEnv(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(`{"userId":"user_9"}`))
	req.Header.Set("X-Admin-Key", "wrong")
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/auth/token", bytes.NewBufferString(`{"userId":"user_9"}`))
	req.Header.Set("X-Admin-Key", "admin-key")
	rec = httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	out := decode[map[string]any](t, rec)
	sub, err := e.auth.Verify(out["token"].(string))
	require.NoError(t, err)
	assert.Equal(t, "user_9", sub)
}
