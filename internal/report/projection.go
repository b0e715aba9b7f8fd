// Package report aggregates stored orders into the figures shown by the CLI
// and the HTTP API: top clients, orders per day and the client co-purchase
// graph.
package report

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/samber/lo"

	"github.com/xenking/shopdesk/internal/domain/order"
)

// Projection is the flat, read-only view of one order used by reports.
type Projection struct {
	OrderID    int64
	ClientID   int64
	ClientName string
	Date       string
	// ProductIDs holds each stored product once, in line order.
	ProductIDs []int64
}

// Project flattens orders into projections, keeping their order.
func Project(orders []order.Order) []Projection {
	return lo.Map(orders, func(o order.Order, _ int) Projection {
		p := Projection{Date: o.Date()}
		p.OrderID, _ = o.ID()
		if c := o.Client(); c != nil {
			p.ClientID, _ = c.ID()
			p.ClientName = c.Name
		}
		ids := lo.FilterMap(o.Lines(), func(l order.Line, _ int) (int64, bool) {
			if l.Product == nil {
				return 0, false
			}
			return l.Product.ID()
		})
		p.ProductIDs = lo.Uniq(ids)
		return p
	})
}

// OrderLister lists stored orders.
type OrderLister interface {
	List(ctx context.Context) ([]order.Order, error)
}

// Load reads every stored order and projects it.
func Load(ctx context.Context, orders OrderLister) ([]Projection, error) {
	list, err := orders.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return Project(list), nil
}
