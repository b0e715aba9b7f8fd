package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/shopdesk/internal/domain/client"
	"github.com/xenking/shopdesk/internal/domain/entity"
	"github.com/xenking/shopdesk/internal/domain/order"
	"github.com/xenking/shopdesk/internal/domain/product"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository on SQLite.
type OrderRepository struct {
	db *sql.DB
}

// Create stores the order row and its line items in one transaction. The
// unit price at order time is kept per line; totals are still computed from
// the current catalog price.
func (r *OrderRepository) Create(ctx context.Context, o order.Order) error {
	if o.HasID() {
		return errors.Wrap(entity.ErrIDAssigned, "order")
	}
	if err := order.CheckLines(o); err != nil {
		return err
	}
	clientID, _ := o.Client().ID()

	var orderID int64
	err := inTx(ctx, r.db, func(q querier) error {
		res, err := q.ExecContext(ctx,
			`INSERT INTO orders (order_date, client_id, discount, kind) VALUES (?, ?, ?, ?)`,
			o.Date(), clientID, order.DiscountOf(o).String(), string(o.Kind()))
		if err != nil {
			return fmt.Errorf("inserting order: %w", err)
		}
		if orderID, err = insertID(res); err != nil {
			return err
		}
		for _, l := range o.Lines() {
			productID, _ := l.Product.ID()
			if _, err := q.ExecContext(ctx,
				`INSERT INTO order_details (order_id, product_id, quantity, price) VALUES (?, ?, ?, ?)`,
				orderID, productID, l.Quantity, l.Product.Price.String()); err != nil {
				return fmt.Errorf("inserting line for product %d: %w", productID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return o.SetID(orderID)
}

// List rehydrates every order with its client and line items.
func (r *OrderRepository) List(ctx context.Context) ([]order.Order, error) {
	clients, err := (&ClientRepository{db: r.db}).List(ctx)
	if err != nil {
		return nil, err
	}
	products, err := (&ProductRepository{db: r.db}).List(ctx)
	if err != nil {
		return nil, err
	}
	lines, err := r.lines(ctx, product.Index(products))
	if err != nil {
		return nil, err
	}
	clientByID := client.Index(clients)

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, order_date, client_id, discount, kind FROM orders ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []order.Order
	for rows.Next() {
		var (
			id       int64
			date     string
			clientID sql.NullInt64
			discount decimal.Decimal
			kind     string
		)
		if err := rows.Scan(&id, &date, &clientID, &discount, &kind); err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		o := order.Restore(order.Kind(kind), clientByID[clientID.Int64], lines[id], date, discount)
		if err := o.SetID(id); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *OrderRepository) lines(ctx context.Context, products map[int64]*product.Product) (map[int64][]order.Line, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT order_id, product_id, quantity FROM order_details ORDER BY order_id, id`)
	if err != nil {
		return nil, fmt.Errorf("listing order lines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make(map[int64][]order.Line)
	for rows.Next() {
		var orderID, productID int64
		var qty int
		if err := rows.Scan(&orderID, &productID, &qty); err != nil {
			return nil, fmt.Errorf("scanning order line: %w", err)
		}
		p, ok := products[productID]
		if !ok {
			return nil, fmt.Errorf("order %d references missing product %d", orderID, productID)
		}
		out[orderID] = append(out[orderID], order.Line{Product: p, Quantity: qty})
	}
	return out, rows.Err()
}
