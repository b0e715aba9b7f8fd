package client

import (
	"context"
	"strings"

	"github.com/go-faster/errors"
	"go.uber.org/zap"
)

// InvalidContactError lists the contact fields that failed validation.
type InvalidContactError struct {
	Name  string
	Phone bool
	Email bool
}

func (e *InvalidContactError) Error() string {
	var fields []string
	if e.Phone {
		fields = append(fields, "phone")
	}
	if e.Email {
		fields = append(fields, "email")
	}
	return "invalid " + strings.Join(fields, " and ") + " for client " + e.Name
}

// Service registers and lists clients.
type Service struct {
	repo Repository
	lg   *zap.Logger
}

// NewService creates a client Service.
func NewService(repo Repository, lg *zap.Logger) *Service {
	return &Service{repo: repo, lg: lg}
}

// Register validates the contact data and persists the client. The client
// keeps no id when either step fails.
func (s *Service) Register(ctx context.Context, c *Client) error {
	if !c.Validate() {
		return &InvalidContactError{
			Name:  c.Name,
			Phone: !c.ValidPhone(),
			Email: !c.ValidEmail(),
		}
	}
	if err := s.repo.Create(ctx, c); err != nil {
		s.lg.Warn("Client not saved", zap.String("name", c.Name), zap.Error(err))
		return errors.Wrap(err, "create client")
	}
	id, _ := c.ID()
	s.lg.Info("Client registered", zap.Int64("id", id), zap.String("name", c.Name))
	return nil
}

// List returns all stored clients in insertion order.
func (s *Service) List(ctx context.Context) ([]*Client, error) {
	cs, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list clients")
	}
	return cs, nil
}
