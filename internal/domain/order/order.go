package order

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xenking/shopdesk/internal/domain/client"
	"github.com/xenking/shopdesk/internal/domain/entity"
	"github.com/xenking/shopdesk/internal/domain/product"
)

// DateLayout is the textual form of order dates.
const DateLayout = "2006-01-02 15:04:05"

// FormatDate renders t in DateLayout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a DateLayout string.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Kind names the concrete order variant.
type Kind string

const (
	// KindStandard is a plain order.
	KindStandard Kind = "Order"
	// KindSpecial is an order with a percentage discount.
	KindSpecial Kind = "SpecialOrder"
)

var hundred = decimal.NewFromInt(100)

// Line is a single line item. Product is shared with the catalog, so price
// edits show up in every order that references it.
type Line struct {
	Product  *product.Product
	Quantity int
}

// Cost returns price * quantity at the current product price.
func (l Line) Cost() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Order is the contract shared by all order variants.
type Order interface {
	ID() (int64, bool)
	HasID() bool
	SetID(id int64) error
	Kind() Kind
	Client() *client.Client
	// Lines returns the line items in entry order. Callers must not modify
	// the returned slice.
	Lines() []Line
	Date() string
	// TotalCost is recomputed on every call.
	TotalCost() decimal.Decimal
	String() string
}

// Discounted is implemented by orders carrying a percentage discount.
type Discounted interface {
	Order
	Discount() decimal.Decimal
}

// DiscountOf returns the discount percentage of o, zero when o has none.
func DiscountOf(o Order) decimal.Decimal {
	if d, ok := o.(Discounted); ok {
		return d.Discount()
	}
	return decimal.Zero
}

var (
	_ Order      = (*Standard)(nil)
	_ Discounted = (*Special)(nil)
)

// Standard is an order without discount. Repeated products are kept as
// independent line items.
type Standard struct {
	entity.Entity

	client *client.Client
	lines  []Line
	date   string
}

// New returns an unsaved standard order. An empty line list is allowed and
// costs zero.
func New(c *client.Client, lines []Line, date string) *Standard {
	return &Standard{client: c, lines: lines, date: date}
}

func (o *Standard) Kind() Kind             { return KindStandard }
func (o *Standard) Client() *client.Client { return o.client }
func (o *Standard) Lines() []Line          { return o.lines }
func (o *Standard) Date() string           { return o.date }

// TotalCost sums price * quantity over all lines.
func (o *Standard) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.lines {
		total = total.Add(l.Cost())
	}
	return total
}

func (o *Standard) String() string {
	return fmt.Sprintf("Order(id=%s, client=%s, date=%s, total_cost=%s)",
		o.IDString(), clientName(o.client), o.date, o.TotalCost())
}

// Special is an order whose total is reduced by a percentage. The discount
// is not clamped: values above 100 yield a negative total.
type Special struct {
	Standard

	discount decimal.Decimal
}

// NewSpecial returns an unsaved discounted order.
func NewSpecial(c *client.Client, lines []Line, date string, discount decimal.Decimal) *Special {
	return &Special{
		Standard: Standard{client: c, lines: lines, date: date},
		discount: discount,
	}
}

func (o *Special) Kind() Kind                { return KindSpecial }
func (o *Special) Discount() decimal.Decimal { return o.discount }

// TotalCost returns the base total multiplied by (1 - discount/100).
func (o *Special) TotalCost() decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(o.discount.Div(hundred))
	return o.Standard.TotalCost().Mul(factor)
}

func (o *Special) String() string {
	return fmt.Sprintf("SpecialOrder(id=%s, client=%s, date=%s, total_cost=%s, discount=%s%%)",
		o.IDString(), clientName(o.client), o.date, o.TotalCost(), o.discount)
}

// Restore rebuilds an order variant from stored fields.
func Restore(kind Kind, c *client.Client, lines []Line, date string, discount decimal.Decimal) Order {
	if kind == KindSpecial {
		return NewSpecial(c, lines, date, discount)
	}
	return New(c, lines, date)
}

// Describe renders a one-line cost statement for any order variant.
func Describe(o Order) string {
	return fmt.Sprintf("Order for client %s costs %s", clientName(o.Client()), o.TotalCost().StringFixed(2))
}

func clientName(c *client.Client) string {
	if c == nil {
		return ""
	}
	return c.Name
}

// Summary is the flat listing row of an order.
type Summary struct {
	ID         int64
	Kind       Kind
	Date       string
	ClientID   int64
	ClientName string
	Discount   decimal.Decimal
	Total      decimal.Decimal
}

// Summarize projects o into a Summary.
func Summarize(o Order) Summary {
	s := Summary{
		Kind:     o.Kind(),
		Date:     o.Date(),
		Discount: DiscountOf(o),
		Total:    o.TotalCost(),
	}
	s.ID, _ = o.ID()
	if c := o.Client(); c != nil {
		s.ClientID, _ = c.ID()
		s.ClientName = c.Name
	}
	return s
}

// Repository defines persistence operations for orders.
type Repository interface {
	// Create stores the order and its line items atomically and assigns the
	// order id after commit.
	Create(ctx context.Context, o Order) error
	// List rehydrates all orders. Orders of the same client or product share
	// a single *client.Client or *product.Product.
	List(ctx context.Context) ([]Order, error)
}
