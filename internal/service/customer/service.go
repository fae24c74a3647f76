package customer

import (
	"context"
	"fmt"
	"strings"

	"scentpos/internal/domain"
	customerrepo "scentpos/internal/repository/customer"
)

// ErrInvalidPhone rejects malformed phone numbers before any request
// reaches the database.
var ErrInvalidPhone = fmt.Errorf("%w: invalid phone format", domain.ErrInvalid)

type Service struct {
	repo customerrepo.Repository
}

func New(repo customerrepo.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.Customer, error) {
	return s.repo.Search(ctx, strings.TrimSpace(query), limit)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Customer, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	if err := validate(&c); err != nil {
		return nil, err
	}
	if c.Points < 0 {
		return nil, fmt.Errorf("%w: points must not be negative", domain.ErrInvalid)
	}
	return s.repo.Create(ctx, c)
}

func (s *Service) Update(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	if strings.TrimSpace(c.ID) == "" {
		return nil, fmt.Errorf("%w: id required", domain.ErrInvalid)
	}
	if err := validate(&c); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, c)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *Service) PointHistory(ctx context.Context, customerID string) ([]domain.PointEntry, error) {
	return s.repo.PointHistory(ctx, customerID)
}

func validate(c *domain.Customer) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	if c.Name == "" {
		return fmt.Errorf("%w: name required", domain.ErrInvalid)
	}
	if !validPhone(c.Phone) {
		return ErrInvalidPhone
	}
	return nil
}

// validPhone accepts 9 to 15 digits with an optional leading +.
func validPhone(phone string) bool {
	digits := phone
	if strings.HasPrefix(digits, "+") {
		digits = digits[1:]
	}
	if len(digits) < 9 || len(digits) > 15 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
