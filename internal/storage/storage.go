// Package storage selects and opens the persistence backend.
package storage

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/shopdesk/internal/domain/client"
	"github.com/xenking/shopdesk/internal/domain/order"
	"github.com/xenking/shopdesk/internal/domain/product"
	"github.com/xenking/shopdesk/internal/storage/postgres"
	"github.com/xenking/shopdesk/internal/storage/sqlite"
)

// Store is an explicitly opened persistence handle.
type Store interface {
	Clients() client.Repository
	Products() product.Repository
	Orders() order.Repository
	Ping(ctx context.Context) error
	Close() error
}

var (
	_ Store = (*sqlite.Store)(nil)
	_ Store = (*postgres.Store)(nil)
)

// Config selects the backend. URL wins over Path when set.
type Config struct {
	Path string `default:"shop.db" usage:"SQLite database file"`
	URL  string `usage:"PostgreSQL connection URL; overrides the SQLite file"`
}

// Open opens the configured backend.
func Open(ctx context.Context, lg *zap.Logger, cfg Config) (Store, error) {
	if cfg.URL != "" {
		lg.Debug("Opening PostgreSQL store")
		s, err := postgres.Open(ctx, cfg.URL)
		if err != nil {
			return nil, errors.Wrap(err, "open postgres")
		}
		return s, nil
	}
	if cfg.Path == "" {
		return nil, errors.New("database path is required")
	}
	lg.Debug("Opening SQLite store", zap.String("path", cfg.Path), zap.String("driver", sqlite.DriverName))
	s, err := sqlite.Open(ctx, cfg.Path)
	if err != nil {
		return nil, errors.Wrap(err, "open sqlite")
	}
	return s, nil
}
