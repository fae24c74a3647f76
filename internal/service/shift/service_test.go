package shift

import (
	"context"
	"errors"
	"testing"
	"time"

	"scentpos/internal/domain"
	shiftrepo "scentpos/internal/repository/shift"
)

type stubRepo struct {
	openShift *domain.Shift
	openErr   error
	byID      *domain.Shift
	lastClose shiftrepo.CloseInput
}

func (s *stubRepo) Open(_ context.Context, cashierName string, openingCash int64) (*domain.Shift, error) {
	if s.openErr != nil {
		return nil, s.openErr
	}
	return &domain.Shift{ID: "s1", CashierName: cashierName, OpeningCash: openingCash, Status: domain.ShiftOpen}, nil
}

func (s *stubRepo) Close(_ context.Context, in shiftrepo.CloseInput) (*domain.Shift, error) {
	s.lastClose = in
	closed := *s.byID
	closed.Status = domain.ShiftClosed
	closed.ActualCash = &in.ActualCash
	closed.ExpectedCash = &in.ExpectedCash
	closed.Discrepancy = &in.Discrepancy
	return &closed, nil
}

func (s *stubRepo) GetActive(_ context.Context) (*domain.Shift, error) {
	if s.openShift == nil {
		return nil, domain.ErrNotFound
	}
	return s.openShift, nil
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Shift, error) {
	if s.byID == nil {
		return nil, domain.ErrNotFound
	}
	return s.byID, nil
}

func (s *stubRepo) List(_ context.Context, _ int) ([]domain.Shift, error) { return nil, nil }

type stubSales struct{ total int64 }

func (s *stubSales) CashSalesForShift(_ context.Context, _ string) (int64, error) {
	return s.total, nil
}

type stubExpenses struct{ total int64 }

func (s *stubExpenses) TotalBetween(_ context.Context, _, _ time.Time) (int64, error) {
	return s.total, nil
}

func TestOpenValidation(t *testing.T) {
	svc := New(&stubRepo{}, &stubSales{}, &stubExpenses{})
	if _, err := svc.Open(context.Background(), "  ", 100000); err == nil {
		t.Fatalf("expected cashier name error")
	}
	if _, err := svc.Open(context.Background(), "Rina", -1); err == nil {
		t.Fatalf("expected opening cash error")
	}
}

func TestOpenSecondShiftRejected(t *testing.T) {
	svc := New(&stubRepo{openErr: domain.ErrConflict}, &stubSales{}, &stubExpenses{})
	_, err := svc.Open(context.Background(), "Rina", 100000)
	if !errors.Is(err, ErrShiftAlreadyOpen) {
		t.Fatalf("expected ErrShiftAlreadyOpen, got %v", err)
	}
}

func TestCloseReconciliation(t *testing.T) {
	opened := time.Date(2026, 3, 15, 8, 0, 0, 0, time.UTC)
	repo := &stubRepo{byID: &domain.Shift{ID: "s1", OpeningCash: 200000, Status: domain.ShiftOpen, OpenedAt: opened}}
	svc := New(repo, &stubSales{total: 750000}, &stubExpenses{total: 50000})

	closed, err := svc.Close(context.Background(), "s1", 880000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// expected = 200000 + 750000 - 50000 = 900000; short by 20000.
	if repo.lastClose.ExpectedCash != 900000 {
		t.Fatalf("unexpected expected cash: %+v", repo.lastClose)
	}
	if repo.lastClose.Discrepancy != -20000 {
		t.Fatalf("unexpected discrepancy: %+v", repo.lastClose)
	}
	if closed.Status != domain.ShiftClosed {
		t.Fatalf("shift not closed: %+v", closed)
	}
}

func TestCloseAlreadyClosed(t *testing.T) {
	repo := &stubRepo{byID: &domain.Shift{ID: "s1", Status: domain.ShiftClosed}}
	svc := New(repo, &stubSales{}, &stubExpenses{})
	if _, err := svc.Close(context.Background(), "s1", 0); err == nil {
		t.Fatalf("expected already closed error")
	}
}

func TestCloseUnknownShift(t *testing.T) {
	svc := New(&stubRepo{}, &stubSales{}, &stubExpenses{})
	_, err := svc.Close(context.Background(), "nope", 0)
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
