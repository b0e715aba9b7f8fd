package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/xenking/shopdesk/internal/domain/client"
	"github.com/xenking/shopdesk/internal/domain/entity"
)

var _ client.Repository = (*ClientRepository)(nil)

// ClientRepository implements client.Repository on SQLite.
type ClientRepository struct {
	db *sql.DB
}

const insertClient = `INSERT INTO clients (name, phone, email) VALUES (?, ?, ?)`

// Create inserts c and assigns its id.
func (r *ClientRepository) Create(ctx context.Context, c *client.Client) error {
	if c.HasID() {
		return errors.Wrapf(entity.ErrIDAssigned, "client %s", c.Name)
	}
	res, err := r.db.ExecContext(ctx, insertClient, c.Name, c.Phone, c.Email)
	if err != nil {
		return fmt.Errorf("inserting client %q: %w", c.Name, err)
	}
	id, err := insertID(res)
	if err != nil {
		return err
	}
	return c.SetID(id)
}

// CreateBatch inserts all clients in one transaction. Ids are assigned after
// commit, so a failed batch leaves every client unsaved.
func (r *ClientRepository) CreateBatch(ctx context.Context, cs []*client.Client) error {
	for _, c := range cs {
		if c.HasID() {
			return errors.Wrapf(entity.ErrIDAssigned, "client %s", c.Name)
		}
	}

	ids := make([]int64, len(cs))
	err := inTx(ctx, r.db, func(q querier) error {
		for i, c := range cs {
			res, err := q.ExecContext(ctx, insertClient, c.Name, c.Phone, c.Email)
			if err != nil {
				return fmt.Errorf("inserting client %q: %w", c.Name, err)
			}
			if ids[i], err = insertID(res); err != nil {
				return err
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
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, phone, email FROM clients ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing clients: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []*client.Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByID returns client.ErrNotFound when no row matches.
func (r *ClientRepository) GetByID(ctx context.Context, id int64) (*client.Client, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, phone, email FROM clients WHERE id = ?`, id)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, client.ErrNotFound
	}
	return c, err
}

// FindByEmail returns the first client with the given email.
func (r *ClientRepository) FindByEmail(ctx context.Context, email string) (*client.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, phone, email FROM clients WHERE email = ? ORDER BY id LIMIT 1`, email)
	c, err := scanClient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, client.ErrNotFound
	}
	return c, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanClient(s scanner) (*client.Client, error) {
	var (
		id           int64
		name         string
		phone, email sql.NullString
	)
	if err := s.Scan(&id, &name, &phone, &email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning client: %w", err)
	}
	c := client.New(name, phone.String, email.String)
	if err := c.SetID(id); err != nil {
		return nil, err
	}
	return c, nil
}
