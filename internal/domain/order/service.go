// Package order implements orders, their cost rules and order placement.
package order

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/xenking/shopdesk/internal/domain/client"
	"github.com/xenking/shopdesk/internal/domain/product"
)

// Item is a requested line: a catalog id and a quantity.
type Item struct {
	ProductID int64
	Quantity  int
}

// PlaceRequest holds the input for placing an order.
type PlaceRequest struct {
	ClientID int64
	Items    []Item
	// Discount in percent. Zero places a standard order.
	Discount decimal.Decimal
	// At is the order time; zero means now.
	At time.Time
}

// Service encapsulates order placement and listing.
type Service struct {
	clients  client.Repository
	products product.Repository
	orders   Repository

	lg     *zap.Logger
	tracer trace.Tracer
	placed metric.Int64Counter
	now    func() time.Time
}

// NewService creates an order Service with the required domain dependencies.
func NewService(
	clients client.Repository,
	products product.Repository,
	orders Repository,
	lg *zap.Logger,
	tp trace.TracerProvider,
	mp metric.MeterProvider,
) (*Service, error) {
	placed, err := mp.Meter("shopdesk/order").Int64Counter("shopdesk.orders.placed",
		metric.WithDescription("Orders stored, by kind"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "orders counter")
	}
	return &Service{
		clients:  clients,
		products: products,
		orders:   orders,
		lg:       lg,
		tracer:   tp.Tracer("shopdesk/order"),
		placed:   placed,
		now:      time.Now,
	}, nil
}

// Place resolves the client and products, builds a standard or discounted
// order and persists it.
func (s *Service) Place(ctx context.Context, req PlaceRequest) (_ Order, rerr error) {
	ctx, span := s.tracer.Start(ctx, "order.Place",
		trace.WithAttributes(attribute.Int64("client.id", req.ClientID)),
	)
	defer func() {
		if rerr != nil {
			span.RecordError(rerr)
			span.SetStatus(codes.Error, rerr.Error())
		}
		span.End()
	}()

	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if req.Discount.IsNegative() {
		return nil, ErrNegativeDiscount
	}
	ids := make([]int64, len(req.Items))
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return nil, &InvalidQuantityError{Line: i + 1, Quantity: item.Quantity}
		}
		ids[i] = item.ProductID
	}

	c, err := s.clients.GetByID(ctx, req.ClientID)
	if err != nil {
		return nil, errors.Wrapf(err, "get client %d", req.ClientID)
	}

	fetched, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "get products")
	}
	byID := make(map[int64]*product.Product, len(fetched))
	for _, p := range fetched {
		id, _ := p.ID()
		byID[id] = p
	}

	lines := make([]Line, len(req.Items))
	for i, item := range req.Items {
		p, ok := byID[item.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: item.ProductID}
		}
		lines[i] = Line{Product: p, Quantity: item.Quantity}
	}

	at := req.At
	if at.IsZero() {
		at = s.now()
	}
	var o Order
	if req.Discount.IsPositive() {
		o = NewSpecial(c, lines, FormatDate(at), req.Discount)
	} else {
		o = New(c, lines, FormatDate(at))
	}

	if err := CheckLines(o); err != nil {
		return nil, err
	}
	if err := s.orders.Create(ctx, o); err != nil {
		s.lg.Warn("Order not saved", zap.String("client", c.Name), zap.Error(err))
		return nil, errors.Wrap(err, "create order")
	}

	id, _ := o.ID()
	s.placed.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", string(o.Kind()))))
	s.lg.Info("Order placed",
		zap.Int64("id", id),
		zap.String("kind", string(o.Kind())),
		zap.String("client", c.Name),
		zap.Stringer("total", o.TotalCost()),
	)
	return o, nil
}

// List returns every stored order.
func (s *Service) List(ctx context.Context) ([]Order, error) {
	ctx, span := s.tracer.Start(ctx, "order.List")
	defer span.End()

	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return orders, nil
}

// Summaries returns the listing rows of every stored order.
func (s *Service) Summaries(ctx context.Context) ([]Summary, error) {
	orders, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Summary, len(orders))
	for i, o := range orders {
		out[i] = Summarize(o)
	}
	return out, nil
}
