package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/xenking/shopdesk/internal/domain/entity"
	"github.com/xenking/shopdesk/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// Create inserts p and assigns its id.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	if p.HasID() {
		return errors.Wrapf(entity.ErrIDAssigned, "product %s", p.Name)
	}
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO products (name, description, price) VALUES ($1, $2, $3) RETURNING id`,
		p.Name, p.Description, p.Price).Scan(&id)
	if err != nil {
		return fmt.Errorf("inserting product %q: %w", p.Name, err)
	}
	return p.SetID(id)
}

// List returns the catalog ordered by id.
func (r *ProductRepository) List(ctx context.Context) ([]*product.Product, error) {
	return r.query(ctx, `SELECT id, name, description, price FROM products ORDER BY id`)
}

// GetByID returns product.ErrNotFound when no row matches.
func (r *ProductRepository) GetByID(ctx context.Context, id int64) (*product.Product, error) {
	ps, err := r.GetByIDs(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	if len(ps) == 0 {
		return nil, product.ErrNotFound
	}
	return ps[0], nil
}

// GetByIDs fetches products in a single query; missing ids are skipped.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]*product.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	return r.query(ctx,
		`SELECT id, name, description, price FROM products WHERE id = ANY($1) ORDER BY id`, ids)
}

func (r *ProductRepository) query(ctx context.Context, query string, args ...any) ([]*product.Product, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	out, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*product.Product, error) {
		var (
			id                int64
			name, description string
			price             decimal.Decimal
		)
		if err := row.Scan(&id, &name, &description, &price); err != nil {
			return nil, err
		}
		p := product.New(name, description, price)
		if err := p.SetID(id); err != nil {
			return nil, err
		}
		return p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning products: %w", err)
	}
	return out, nil
}
