package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/shopdesk/internal/domain/entity"
	"github.com/xenking/shopdesk/internal/domain/product"
)

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository on SQLite.
type ProductRepository struct {
	db *sql.DB
}

// Create inserts p and assigns its id.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	if p.HasID() {
		return errors.Wrapf(entity.ErrIDAssigned, "product %s", p.Name)
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO products (name, description, price) VALUES (?, ?, ?)`,
		p.Name, p.Description, p.Price.String())
	if err != nil {
		return fmt.Errorf("inserting product %q: %w", p.Name, err)
	}
	id, err := insertID(res)
	if err != nil {
		return err
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

// GetByIDs returns the products found among ids; missing ids are skipped.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []int64) ([]*product.Product, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	return r.query(ctx,
		`SELECT id, name, description, price FROM products WHERE id IN (`+placeholders(len(ids))+`) ORDER BY id`,
		args...)
}

func (r *ProductRepository) query(ctx context.Context, query string, args ...any) ([]*product.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*product.Product
	for rows.Next() {
		var (
			id          int64
			name        string
			description sql.NullString
			price       decimal.Decimal
		)
		if err := rows.Scan(&id, &name, &description, &price); err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		p := product.New(name, description.String, price)
		if err := p.SetID(id); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
