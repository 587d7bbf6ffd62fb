// Package storefront assembles the marketplace services behind the HTTP
// storefront from configuration.
package storefront

import (
	"context"
	"errors"
	"net/http"

	"handmade-market/internal/cart"
	"handmade-market/internal/checkout"
	"handmade-market/internal/config"
	"handmade-market/internal/dashboard"
	"handmade-market/internal/events"
	"handmade-market/internal/httpapi"
	"handmade-market/internal/logger"
	"handmade-market/internal/metrics"
	"handmade-market/internal/order"
	"handmade-market/internal/product"
	"handmade-market/internal/session"
	"handmade-market/internal/storage"

	"go.uber.org/zap"
)

type App struct {
	Handler http.Handler
	Deps    httpapi.Deps

	closers []func() error
}

// New opens storage and the event publisher and rehydrates every store
// once. Close releases what New opened.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &App{}
	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.closers = append(app.closers, closeStore)

	publisher, err := events.Open(ctx, cfg.KafkaBrokers, cfg.KafkaTopic)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.closers = append(app.closers, publisher.Close)

	deps, err := build(ctx, cfg, store, publisher)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Deps = deps
	app.Handler = httpapi.New(deps).Routes(httpapi.Options{
		Origins:   cfg.CORSOrigins,
		RateLimit: cfg.RateLimitEnabled,
	})
	return app, nil
}

func build(ctx context.Context, cfg *config.Config, store storage.Store, publisher order.Publisher) (httpapi.Deps, error) {
	products, err := product.NewService(ctx, product.NewRepository(store), product.DemoCatalog())
	if err != nil {
		return httpapi.Deps{}, err
	}
	carts, err := cart.NewService(ctx, cart.NewRepository(store))
	if err != nil {
		return httpapi.Deps{}, err
	}

	policy := order.Permissive
	if cfg.StrictOrderTransitions {
		policy = order.Strict
	}
	orders, err := order.NewService(ctx, order.NewRepository(store),
		order.WithPolicy(policy),
		order.WithPublisher(publisher),
	)
	if err != nil {
		return httpapi.Deps{}, err
	}

	sessions, err := session.NewManager(ctx, store, session.NewClient(cfg.AuthAPIURL, nil))
	if err != nil {
		return httpapi.Deps{}, err
	}

	m := metrics.New("storefront")
	pricing := checkout.Pricing{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		ShippingFee:           cfg.ShippingFee,
		TaxRate:               cfg.TaxRate,
	}
	observe := func(outcome string, method order.PaymentMethod) {
		m.RecordCheckout(outcome, string(method))
	}

	return httpapi.Deps{
		Products:  products,
		Cart:      carts,
		Orders:    orders,
		Checkout:  checkout.NewService(carts, orders, checkout.NewSimulatedGateway(cfg.PaymentDelay), pricing, observe),
		Dashboard: dashboard.NewService(products, orders),
		Session:   sessions,
		Metrics:   m,
	}, nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		logger.L().Error("failed to close storefront resources", zap.Error(err))
		return err
	}
	return nil
}
