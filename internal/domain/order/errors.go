package order

import (
	"fmt"

	"github.com/go-faster/errors"
)

// Sentinel errors for order validation.
var (
	ErrEmptyItems         = errors.New("items required")
	ErrNegativeDiscount   = errors.New("discount must not be negative")
	ErrClientNotPersisted = errors.New("client is not persisted")
)

// ProductNotFoundError indicates a requested product does not exist.
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %d not found", e.ProductID)
}

// InvalidQuantityError indicates a line item has a non-positive quantity.
type InvalidQuantityError struct {
	Line     int
	Quantity int
}

func (e *InvalidQuantityError) Error() string {
	return fmt.Sprintf("line %d: quantity must be greater than 0, got %d", e.Line, e.Quantity)
}

// ProductNotPersistedError indicates a line references a product without id.
type ProductNotPersistedError struct {
	Line int
	Name string
}

func (e *ProductNotPersistedError) Error() string {
	return fmt.Sprintf("line %d: product %q is not persisted", e.Line, e.Name)
}

// CheckLines verifies that an order can be handed to storage: the client
// and every product are persisted and every quantity is positive. Lines are
// numbered from 1 in errors.
func CheckLines(o Order) error {
	if c := o.Client(); c == nil || !c.HasID() {
		return ErrClientNotPersisted
	}
	for i, l := range o.Lines() {
		if l.Quantity <= 0 {
			return &InvalidQuantityError{Line: i + 1, Quantity: l.Quantity}
		}
		if l.Product == nil {
			return &ProductNotPersistedError{Line: i + 1}
		}
		if !l.Product.HasID() {
			return &ProductNotPersistedError{Line: i + 1, Name: l.Product.Name}
		}
	}
	return nil
}
