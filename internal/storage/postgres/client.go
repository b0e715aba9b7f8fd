package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/shopdesk/internal/domain/client"
	"github.com/xenking/shopdesk/internal/domain/entity"
)

var _ client.Repository = (*ClientRepository)(nil)

// ClientRepository implements client.Repository backed by PostgreSQL.
type ClientRepository struct {
	pool *pgxpool.Pool
}

// NewClientRepository returns a ClientRepository that uses the given pool.
func NewClientRepository(pool *pgxpool.Pool) *ClientRepository {
	return &ClientRepository{pool: pool}
}

const insertClient = `INSERT INTO clients (name, phone, email) VALUES ($1, $2, $3) RETURNING id`

// Create inserts c and assigns its id.
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	if c.HasID() {
		return errors.Wrapf(entity.ErrIDAssigned, "client %s", c.Name)
	}
	var id int64
	if err := r.pool.QueryRow(ctx, insertClient, c.Name, c.Phone, c.Email).Scan(&id); err != nil {
		return fmt.Errorf("inserting client %q: %w", c.Name, err)
	}
	return c.SetID(id)
}

// CreateBatch inserts all clients in one transaction and assigns ids after
// commit.
func (r *ClientRepository) CreateBatch(ctx context.Context, cs []*client.Client) error {
	for _, c := range cs {
		if c.HasID() {
			return errors.Wrapf(entity.ErrIDAssigned, "client %s", c.Name)
		}
	}

	ids := make([]int64, len(cs))
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		for i, c := range cs {
			if err := tx.QueryRow(ctx, insertClient, c.Name, c.Phone, c.Email).Scan(&ids[i]); err != nil {
				return fmt.Errorf("inserting client %q: %w", c.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for i, c := range cs {
		if err := c.SetID(ids[i]); err != nil {
			return err
		}
	}
	return nil
}

// List returns all clients ordered by id.
func (r *ClientRepository) List(ctx context.Context) ([]*client.Client, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name, phone, email FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	out, err := pgx.CollectRows(rows, scanClient)
	if err != nil {
		return nil, fmt.Errorf("scanning clients: %w", err)
	}
	return out, nil
}

// GetByID returns client.ErrNotFound when no row matches.
func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*client.Client, error) {
	return r.one(ctx, `SELECT id, name, phone, email FROM clients WHERE id = $1`, id)
}

// FindByEmail returns the first client with the given email.
func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*client.Client, error) {
	return r.one(ctx, `SELECT id, name, phone, email FROM clients WHERE email = $1 ORDER BY id LIMIT 1`, email)
}

func (r *ClientRepository) one(ctx context.Context, query string, arg any) (*client.Client, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("querying client: %w", err)
	}
	c, err := pgx.CollectExactlyOneRow(rows, scanClient)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, client.ErrNotFound
		}
		return nil, fmt.Errorf("scanning client: %w", err)
	}
	return c, nil
}

func scanClient(row pgx.CollectableRow) (*client.Client, error) {
	var (
		id                 int64
		name, phone, email string
	)
	if err := row.Scan(&id, &name, &phone, &email); err != nil {
		return nil, err
	}
	c := client.New(name, phone, email)
	if err := c.SetID(id); err != nil {
		return nil, err
	}
	return c, nil
}
