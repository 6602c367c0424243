package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/marcosvidal/storeadmin/internal/adapters/auth"
	"github.com/marcosvidal/storeadmin/internal/domain"
	"github.com/marcosvidal/storeadmin/internal/usecase"
)

// WebhookParser verifies a raw gateway callback and maps it to a domain
// payment event. nil event, nil error means "ignore this event type".
type WebhookParser interface {
	ParseEvent(payload []byte, sigHeader string) (*domain.PaymentEvent, error)
}

type Deps struct {
	Stores      *usecase.Stores
	Billboards  *usecase.Catalog[domain.Billboard]
	Categories  *usecase.Catalog[domain.Category]
	Sizes       *usecase.Catalog[domain.Size]
	Colors      *usecase.Catalog[domain.Color]
	Products    *usecase.Products
	Orders      *usecase.Orders
	Checkout    *usecase.Checkout
	Fulfillment *usecase.Fulfillment
	Webhooks    WebhookParser
	Auth        *auth.Service
	Google      *auth.GoogleLogin
	AdminAPIKey string
}

type Server struct {
	router *chi.Mux
	deps   Deps
}

func New(deps Deps) http.Handler {
	s := &Server{router: chi.NewRouter(), deps: deps}

	s.router.Use(middleware.RequestID, middleware.RealIP, requestLogger, middleware.Recoverer)
	s.router.Use(deps.Auth.Middleware)

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.router.Post("/webhook", s.handleWebhook)

	s.router.Route("/auth", func(r chi.Router) {
		r.Post("/token", s.handleIssueToken)
		if deps.Google != nil {
			r.Get("/google/login", deps.Google.HandleLogin)
			r.Get("/google/callback", deps.Google.HandleCallback)
		}
	})

	s.router.Route("/api/stores", func(r chi.Router) {
		r.Post("/", s.createStore)
		r.Get("/", s.listStores)
		r.Route("/{storeID}", func(r chi.Router) {
			r.Patch("/", s.updateStore)
			r.Delete("/", s.deleteStore)

			// Catalog reads are public by design: the storefront consumes
			// them without credentials. Mutations gate themselves.
			mountCatalog(r, "billboards", "billboards", deps.Billboards)
			mountCatalog(r, "categories", "categories", deps.Categories)
			mountCatalog(r, "sizes", "sizes", deps.Sizes)
			mountCatalog(r, "colors", "colors", deps.Colors)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", s.listProducts)
				r.Post("/", s.createProduct)
				r.Get("/export", s.exportProducts)
				r.Get("/{id}", s.getProduct)
				r.Patch("/{id}", s.updateProduct)
				r.Delete("/{id}", s.deleteProduct)
			})

			r.Get("/orders", s.listOrders)
			r.Post("/checkout", s.startCheckout)
		})
	})

	return s.router
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("request")
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// respondError maps the domain error taxonomy onto the status contract.
// Internal detail never leaks; it is logged under the operation tag instead.
func respondError(w http.ResponseWriter, op string, err error) {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": ve.Message})
	case errors.Is(err, domain.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
	case errors.Is(err, domain.ErrUnauthorized):
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "unauthorized"})
	case errors.Is(err, domain.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		log.Error().Err(err).Str("op", op).Msg("internal error")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func callerID(r *http.Request) string {
	c, _ := auth.FromContext(r.Context())
	return c.UserID
}

// pathID parses a chi URL parameter; malformed ids collapse to Nil and fail
// the usecase's presence check.
func pathID(r *http.Request, name string) uuid.UUID {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil
	}
	return id
}
