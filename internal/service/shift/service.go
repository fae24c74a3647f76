package shift

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"scentpos/internal/domain"
	shiftrepo "scentpos/internal/repository/shift"
)

// ErrShiftAlreadyOpen rejects opening a second concurrent shift.
var ErrShiftAlreadyOpen = fmt.Errorf("%w: a shift is already open", domain.ErrConflict)

type cashSales interface {
	CashSalesForShift(ctx context.Context, shiftID string) (int64, error)
}

type expenseTotals interface {
	TotalBetween(ctx context.Context, from, to time.Time) (int64, error)
}

type Service struct {
	repo     shiftrepo.Repository
	sales    cashSales
	expenses expenseTotals
	now      func() time.Time
}

func New(repo shiftrepo.Repository, sales cashSales, expenses expenseTotals) *Service {
	return &Service{repo: repo, sales: sales, expenses: expenses, now: time.Now}
}

func (s *Service) Open(ctx context.Context, cashierName string, openingCash int64) (*domain.Shift, error) {
	cashierName = strings.TrimSpace(cashierName)
	if cashierName == "" {
		return nil, fmt.Errorf("%w: cashier name required", domain.ErrInvalid)
	}
	if openingCash < 0 {
		return nil, fmt.Errorf("%w: opening cash must not be negative", domain.ErrInvalid)
	}
	shift, err := s.repo.Open(ctx, cashierName, openingCash)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, ErrShiftAlreadyOpen
		}
		return nil, err
	}
	return shift, nil
}

// Close reconciles the till: expected cash is the opening float plus
// cash-method sales recorded against the shift, minus expenses paid out
// of the drawer while it was open. The discrepancy is stored, never
// corrected automatically.
func (s *Service) Close(ctx context.Context, shiftID string, actualCash int64) (*domain.Shift, error) {
	if actualCash < 0 {
		return nil, fmt.Errorf("%w: actual cash must not be negative", domain.ErrInvalid)
	}
	shift, err := s.repo.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status != domain.ShiftOpen {
		return nil, fmt.Errorf("%w: shift already closed", domain.ErrConflict)
	}

	sales, err := s.sales.CashSalesForShift(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	spent, err := s.expenses.TotalBetween(ctx, shift.OpenedAt, s.now())
	if err != nil {
		return nil, err
	}

	expected := shift.OpeningCash + sales - spent
	return s.repo.Close(ctx, shiftrepo.CloseInput{
		ShiftID:      shiftID,
		ActualCash:   actualCash,
		ExpectedCash: expected,
		Discrepancy:  actualCash - expected,
	})
}

func (s *Service) Active(ctx context.Context) (*domain.Shift, error) {
	return s.repo.GetActive(ctx)
}

func (s *Service) List(ctx context.Context, limit int) ([]domain.Shift, error) {
	return s.repo.List(ctx, limit)
}
