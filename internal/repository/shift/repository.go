package shift

import (
	"context"

	"scentpos/internal/domain"
)

// CloseInput carries the close-time reconciliation figures.
type CloseInput struct {
	ShiftID      string
	ActualCash   int64
	ExpectedCash int64
	Discrepancy  int64
}

type Repository interface {
	Open(ctx context.Context, cashierName string, openingCash int64) (*domain.Shift, error)
	Close(ctx context.Context, in CloseInput) (*domain.Shift, error)
	GetActive(ctx context.Context) (*domain.Shift, error)
	GetByID(ctx context.Context, id string) (*domain.Shift, error)
	List(ctx context.Context, limit int) ([]domain.Shift, error)
}
