package expense

import (
	"context"
	"fmt"
	"strings"
	"time"

	"scentpos/internal/domain"
	expenserepo "scentpos/internal/repository/expense"
)

type Service struct {
	repo expenserepo.Repository
	now  func() time.Time
}

func New(repo expenserepo.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) List(ctx context.Context) ([]domain.Expense, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, e domain.Expense) (*domain.Expense, error) {
	e.Description = strings.TrimSpace(e.Description)
	if e.Description == "" {
		return nil, fmt.Errorf("%w: description required", domain.ErrInvalid)
	}
	if e.Amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalid)
	}
	if e.SpentAt.IsZero() {
		e.SpentAt = s.now()
	}
	return s.repo.Create(ctx, e)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}
