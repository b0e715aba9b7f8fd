// Package app wires configuration, storage and services together.
package app

import (
	"context"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/shopdesk/internal/domain/client"
	"github.com/xenking/shopdesk/internal/domain/order"
	"github.com/xenking/shopdesk/internal/domain/product"
	"github.com/xenking/shopdesk/internal/storage"
)

// Telemetry provides the OpenTelemetry providers; *app.Telemetry from the
// go-faster sdk satisfies it.
type Telemetry interface {
	TracerProvider() trace.TracerProvider
	MeterProvider() metric.MeterProvider
}

// App holds the opened store and the services built on top of it.
type App struct {
	Config   *Config
	Store    storage.Store
	Clients  *client.Service
	Products *product.Service
	Orders   *order.Service

	lg *zap.Logger
	m  Telemetry
}

// New opens the configured store and builds the services. When
// cfg.SeedDefaults is set an empty catalog receives the demo products.
func New(ctx context.Context, lg *zap.Logger, m Telemetry, cfg *Config) (_ *App, rerr error) {
	store, err := storage.Open(ctx, lg, cfg.Database)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rerr != nil {
			_ = store.Close()
		}
	}()

	orders, err := order.NewService(
		store.Clients(),
		store.Products(),
		store.Orders(),
		lg.Named("order"),
		m.TracerProvider(),
		m.MeterProvider(),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create order service")
	}

	a := &App{
		Config:   cfg,
		Store:    store,
		Clients:  client.NewService(store.Clients(), lg.Named("client")),
		Products: product.NewService(store.Products(), lg.Named("product")),
		Orders:   orders,
		lg:       lg,
		m:        m,
	}

	if cfg.SeedDefaults {
		if _, err := a.Products.EnsureDefaults(ctx, product.Defaults()); err != nil {
			return nil, errors.Wrap(err, "seed products")
		}
	}
	return a, nil
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}
