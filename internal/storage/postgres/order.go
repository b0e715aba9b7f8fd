package postgres

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/xenking/shopdesk/internal/domain/client"
	"github.com/xenking/shopdesk/internal/domain/entity"
	"github.com/xenking/shopdesk/internal/domain/order"
	"github.com/xenking/shopdesk/internal/domain/product"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool     *pgxpool.Pool
	clients  *ClientRepository
	products *ProductRepository
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{
		pool:     pool,
		clients:  NewClientRepository(pool),
		products: NewProductRepository(pool),
	}
}

// Create persists the order row and its line items in one transaction.
func (r *OrderRepository) Create(ctx context.Context, o order.Order) error {
	if o.HasID() {
		return errors.Wrap(entity.ErrIDAssigned, "order")
	}
	if err := order.CheckLines(o); err != nil {
		return err
	}
	clientID, _ := o.Client().ID()

	var orderID int64
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		err := tx.QueryRow(ctx,
			`INSERT INTO orders (order_date, client_id, discount, kind) VALUES ($1, $2, $3, $4) RETURNING id`,
			o.Date(), clientID, order.DiscountOf(o), string(o.Kind())).Scan(&orderID)
		if err != nil {
			return fmt.Errorf("inserting order: %w", err)
		}

		batch := &pgx.Batch{}
		for _, l := range o.Lines() {
			productID, _ := l.Product.ID()
			batch.Queue(
				`INSERT INTO order_details (order_id, product_id, quantity, price) VALUES ($1, $2, $3, $4)`,
				orderID, productID, l.Quantity, l.Product.Price)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("inserting order lines: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("creating order: %w", err)
	}
	return o.SetID(orderID)
}

type orderRow struct {
	id       int64
	date     string
	clientID *int64
	discount decimal.Decimal
	kind     string
}

// List rehydrates every order with shared client and product references.
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	clients, err := r.clients.List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := r.products.List(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := r.lines(ctx, product.Index(products))
	if err != nil {
		return nil, err
	}
	clientByID := client.Index(clients)

	rows, err := r.pool.Query(ctx, `SELECT id, order_date, client_id, discount, kind FROM orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	stored, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (orderRow, error) {
		var o orderRow
		err := row.Scan(&o.id, &o.date, &o.clientID, &o.discount, &o.kind)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning orders: %w", err)
	}

	out := make([]order.Order, 0, len(stored))
	for _, s := range stored {
		var c *client.Client
		if s.clientID != nil {
			c = clientByID[*s.clientID]
		}
		o := order.Restore(order.Kind(s.kind), c, lines[s.id], s.date, s.discount)
		if err := o.SetID(s.id); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func (r *OrderRepository) lines(ctx context.Context, products map[int64]*product.Product) (map[int64][]order.Line, error) {
	rows, err := r.pool.Query(ctx, `SELECT order_id, product_id, quantity FROM order_details ORDER BY order_id, id`)
	if err != nil {
		return nil, fmt.Errorf("listing order lines: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]order.Line)
	for rows.Next() {
		var orderID, productID int64
		var qty int32
		if err := rows.Scan(&orderID, &productID, &qty); err != nil {
			return nil, fmt.Errorf("scanning order line: %w", err)
		}
		p, ok := products[productID]
		if !ok {
			return nil, fmt.Errorf("order %d references missing product %d", orderID, productID)
		}
		out[orderID] = append(out[orderID], order.Line{Product: p, Quantity: int(qty)})
	}
	return out, rows.Err()
}
