// Package entity provides the identity shared by every persisted record.
package entity

import (
	"fmt"
	"strconv"

	"github.com/go-faster/errors"
)

// ErrIDAssigned is returned when SetID is called on an entity that already
// carries an identifier.
var ErrIDAssigned = errors.New("id already assigned")

// Entity holds the optional storage identifier of a record. The zero value is
// an entity that has not been persisted yet.
type Entity struct {
	id    int64
	isSet bool
}

// ID returns the identifier and whether it has been assigned.
func (e *Entity) ID() (int64, bool) {
	return e.id, e.isSet
}

// HasID reports whether the entity has been persisted.
func (e *Entity) HasID() bool {
	return e.isSet
}

// SetID assigns the identifier. Storage calls it once, after a successful
// insert or when loading a row.
func (e *Entity) SetID(id int64) error {
	if e.isSet {
		return errors.Wrapf(ErrIDAssigned, "assign %d over %d", id, e.id)
	}
	e.id = id
	e.isSet = true
	return nil
}

// IDString renders the identifier for display, "<unset>" when absent.
func (e *Entity) IDString() string {
	if !e.isSet {
		return "<unset>"
	}
	return strconv.FormatInt(e.id, 10)
}

// Label renders the entity as Kind(id=N).
func (e *Entity) Label(kind string) string {
	return fmt.Sprintf("%s(id=%s)", kind, e.IDString())
}
