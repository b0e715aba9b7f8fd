package product

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Defaults is the demo catalog stored on first start.
func Defaults() []*Product {
	return []*Product{
		New("Laptop", "Laptop description", decimal.NewFromInt(75000)),
		New("Smartphone", "Smartphone description", decimal.NewFromInt(35000)),
	}
}

// Service manages the catalog.
type Service struct {
	repo Repository
	lg   *zap.Logger
}

// NewService creates a product Service.
func NewService(repo Repository, lg *zap.Logger) *Service {
	return &Service{repo: repo, lg: lg}
}

// Add stores a new product.
func (s *Service) Add(ctx context.Context, p *Product) error {
	if err := s.repo.Create(ctx, p); err != nil {
		s.lg.Warn("Product not saved", zap.String("name", p.Name), zap.Error(err))
		return errors.Wrap(err, "create product")
	}
	return nil
}

// List returns the whole catalog.
func (s *Service) List(ctx context.Context) ([]*Product, error) {
	ps, err := s.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return ps, nil
}

// EnsureDefaults stores defaults when the catalog is empty and reports
// whether anything was seeded.
func (s *Service) EnsureDefaults(ctx context.Context, defaults []*Product) (bool, error) {
	existing, err := s.List(ctx)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}
	for _, p := range defaults {
		if err := s.Add(ctx, p); err != nil {
			return false, errors.Wrapf(err, "seed %q", p.Name)
		}
	}
	s.lg.Info("Seeded empty catalog", zap.Int("count", len(defaults)))
	return true, nil
}
