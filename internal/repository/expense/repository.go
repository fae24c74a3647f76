package expense

import (
	"context"
	"time"

	"scentpos/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Expense, error)
	Create(ctx context.Context, e domain.Expense) (*domain.Expense, error)
	Delete(ctx context.Context, id string) error
	// TotalBetween sums expenses spent within [from, to), for shift
	// reconciliation.
	TotalBetween(ctx context.Context, from, to time.Time) (int64, error)
}
