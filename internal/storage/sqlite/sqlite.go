// Package sqlite implements the local single-file store.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/xenking/shopdesk/internal/domain/client"
	"github.com/xenking/shopdesk/internal/domain/order"
	"github.com/xenking/shopdesk/internal/domain/product"
)

// Store bundles the SQLite repositories over one connection.
type Store struct {
	db *sql.DB

	clients  *ClientRepository
	products *ProductRepository
	orders   *OrderRepository
}

// openDatabase opens a SQLite database with appropriate settings.
func openDatabase(ctx context.Context, path string) (*sql.DB, error) {
	conn, err := sql.Open(DriverName, path)
	if err != nil {
		return nil, err
	}

	// A single connection keeps ":memory:" databases alive across calls and
	// serializes writers.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	if _, err := conn.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}
	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys=ON"); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	return conn, nil
}

// Open opens (creating if needed) the database at path and applies
// migrations. Use ":memory:" for a throwaway store.
func Open(ctx context.Context, path string) (*Store, error) {
	conn, err := openDatabase(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("opening database %q: %w", path, err)
	}
	if err := ApplyMigrations(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("applying migrations: %w", err)
	}
	return &Store{
		db:       conn,
		clients:  &ClientRepository{db: conn},
		products: &ProductRepository{db: conn},
		orders:   &OrderRepository{db: conn},
	}, nil
}

func (s *Store) Clients() client.Repository   { return s.clients }
func (s *Store) Products() product.Repository { return s.products }
func (s *Store) Orders() order.Repository     { return s.orders }

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// querier is an interface that both *sql.DB and *sql.Tx implement.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// inTx runs fn in a transaction and commits when fn succeeds.
func inTx(ctx context.Context, conn *sql.DB, fn func(q querier) error) error {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

func insertID(res sql.Result) (int64, error) {
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted id: %w", err)
	}
	return id, nil
}

// placeholders returns "?, ?, ..." with n markers.
func placeholders(n int) string {
	if n == 0 {
		return ""
	}
	b := make([]byte, 0, n*3)
	for i := range n {
		if i > 0 {
			b = append(b, ", "...)
		}
		b = append(b, '?')
	}
	return string(b)
}
