package app

import (
	"context"
	"net/http"

	"gorm.io/gorm"

	"github.com/marcosvidal/storeadmin/internal/adapters/auth"
	"github.com/marcosvidal/storeadmin/internal/adapters/events"
	"github.com/marcosvidal/storeadmin/internal/adapters/httpserver"
	"github.com/marcosvidal/storeadmin/internal/adapters/payments/stripe"
	"github.com/marcosvidal/storeadmin/internal/adapters/redisx"
	"github.com/marcosvidal/storeadmin/internal/adapters/repo/postgres"
	"github.com/marcosvidal/storeadmin/internal/config"
	"github.com/marcosvidal/storeadmin/internal/domain"
	"github.com/marcosvidal/storeadmin/internal/usecase"
)

type App struct {
	db        *gorm.DB
	handler   http.Handler
	publisher *events.Publisher
}

func New(db *gorm.DB, cfg config.Config) (*App, error) {
	storeRepo := postgres.NewStoreRepo(db)
	billboardRepo := postgres.NewCatalogRepo[domain.Billboard](db)
	categoryRepo := postgres.NewCatalogRepo[domain.Category](db, "Billboard")
	sizeRepo := postgres.NewCatalogRepo[domain.Size](db)
	colorRepo := postgres.NewCatalogRepo[domain.Color](db)
	productRepo := postgres.NewProductRepo(db)
	orderRepo := postgres.NewOrderRepo(db)

	guard := &usecase.Guard{Stores: storeRepo}
	gateway := stripe.New(cfg.StripeSecretKey, cfg.StripeWebhookSecret, cfg.FrontendURL)

	var dedup usecase.Deduper
	if cfg.RedisAddr != "" {
		dedup = redisx.NewDeduper(redisx.New(cfg.RedisAddr))
	}

	app := &App{db: db}
	var publisher domain.EventPublisher
	if len(cfg.KafkaBrokers) > 0 {
		p := events.NewPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, 256)
		p.Start(context.Background())
		app.publisher = p
		publisher = p
	}

	tokens := auth.New(cfg.AuthSecret)

	app.handler = httpserver.New(httpserver.Deps{
		Stores:     &usecase.Stores{Repo: storeRepo},
		Billboards: usecase.NewBillboards(billboardRepo, guard),
		Categories: usecase.NewCategories(categoryRepo, guard),
		Sizes:      usecase.NewSizes(sizeRepo, guard),
		Colors:     usecase.NewColors(colorRepo, guard),
		Products:   &usecase.Products{Repo: productRepo, Guard: guard},
		Orders:     &usecase.Orders{Repo: orderRepo, Guard: guard},
		Checkout:   &usecase.Checkout{Products: productRepo, Orders: orderRepo, Gateway: gateway},
		Fulfillment: &usecase.Fulfillment{
			Orders:   orderRepo,
			Products: productRepo,
			Dedup:    dedup,
			Events:   publisher,
		},
		Webhooks:    gateway,
		Auth:        tokens,
		Google:      auth.NewGoogleLogin(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.BaseURL, tokens),
		AdminAPIKey: cfg.AdminAPIKey,
	})
	return app, nil
}

func (a *App) HTTPHandler() http.Handler { return a.handler }

func (a *App) Migrate() error {
	return a.db.AutoMigrate(
		&domain.Store{},
		&domain.Billboard{},
		&domain.Category{},
		&domain.Size{},
		&domain.Color{},
		&domain.Product{},
		&domain.Image{},
		&domain.Order{},
		&domain.OrderItem{},
	)
}

// Close flushes the event publisher, if one is configured.
func (a *App) Close() {
	if a.publisher != nil {
		a.publisher.Close()
		a.publisher.WaitClosed()
	}
}
