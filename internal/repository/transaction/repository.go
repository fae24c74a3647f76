package transaction

import (
	"context"

	"scentpos/internal/domain"
)

// CreateInput carries the fully computed transaction plus the side
// effects the repository must apply atomically with it.
type CreateInput struct {
	Transaction  domain.Transaction
	RedeemPoints int    // points deducted from the customer, 0 when unused
	EarnPoints   int    // points credited to the customer
	VoucherID    string // usage counter to increment, empty when no voucher
}

type Repository interface {
	// Create inserts the transaction and its items, decrements stock,
	// moves loyalty points and counts voucher usage in one database
	// transaction. Any failure leaves all state unchanged.
	Create(ctx context.Context, in CreateInput) (*domain.Transaction, error)
	List(ctx context.Context, limit int) ([]domain.Transaction, error)
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	// CashSalesForShift sums the totals of cash-method sales recorded
	// against the given shift.
	CashSalesForShift(ctx context.Context, shiftID string) (int64, error)
}
