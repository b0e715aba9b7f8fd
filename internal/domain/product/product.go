// Package product holds the shop catalog.
package product

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/xenking/shopdesk/internal/domain/entity"
)

// ErrNotFound is returned when a requested product does not exist.
var ErrNotFound = errors.New("product not found")

// Product represents a catalog item. A negative price is representable; the
// catalog does not police it.
type Product struct {
	entity.Entity

	Name        string
	Description string
	Price       decimal.Decimal
}

// New returns an unsaved product.
func New(name, description string, price decimal.Decimal) *Product {
	return &Product{Name: name, Description: description, Price: price}
}

func (p *Product) String() string {
	return fmt.Sprintf("Product(id=%s, name=%s, price=%s)", p.IDString(), p.Name, p.Price)
}

// Index maps stored products by id. Products without id are skipped.
func Index(ps []*Product) map[int64]*Product {
	saved := lo.Filter(ps, func(p *Product, _ int) bool { return p.HasID() })
	return lo.KeyBy(saved, func(p *Product) int64 {
		id, _ := p.ID()
		return id
	})
}

// Repository defines persistence operations for the product catalog.
type Repository interface {
	Create(ctx context.Context, p *Product) error
	List(ctx context.Context) ([]*Product, error)
	GetByID(ctx context.Context, id int64) (*Product, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*Product, error)
}
