// Package client holds the contact record of a shop customer.
package client

import (
	"context"
	"fmt"
	"regexp"

	"github.com/go-faster/errors"
	"github.com/samber/lo"

	"github.com/xenking/shopdesk/internal/domain/entity"
)

// ErrNotFound is returned when a requested client does not exist.
var ErrNotFound = errors.New("client not found")

var (
	phonePattern = regexp.MustCompile(`^\+?\d{7,15}$`)
	emailPattern = regexp.MustCompile(`^[\w.-]+@[\w.-]+\.\w+$`)
)

// Client is a customer contact. Construction never validates, so forms can
// hold rejected input until the user fixes it.
type Client struct {
	entity.Entity

	Name  string
	Phone string
	Email string
}

// New returns an unsaved client.
func New(name, phone, email string) *Client {
	return &Client{Name: name, Phone: phone, Email: email}
}

// ValidPhone reports whether Phone is an optional "+" followed by 7-15 digits.
func (c *Client) ValidPhone() bool {
	return phonePattern.MatchString(c.Phone)
}

// ValidEmail reports whether Email looks like local@domain.tld.
func (c *Client) ValidEmail() bool {
	return emailPattern.MatchString(c.Email)
}

// Validate reports whether both contact fields are well-formed.
func (c *Client) Validate() bool {
	return c.ValidPhone() && c.ValidEmail()
}

func (c *Client) String() string {
	return fmt.Sprintf("Client(id=%s, name=%s)", c.IDString(), c.Name)
}

// Index maps stored clients by id. Clients without id are skipped.
func Index(cs []*Client) map[int64]*Client {
	saved := lo.Filter(cs, func(c *Client, _ int) bool { return c.HasID() })
	return lo.KeyBy(saved, func(c *Client) int64 {
		id, _ := c.ID()
		return id
	})
}

// Repository defines persistence operations for clients.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	// CreateBatch stores all clients in one transaction. Ids are assigned
	// only when the whole batch commits.
	CreateBatch(ctx context.Context, cs []*Client) error
	List(ctx context.Context) ([]*Client, error)
	GetByID(ctx context.Context, id int64) (*Client, error)
	FindByEmail(ctx context.Context, email string) (*Client, error)
}
