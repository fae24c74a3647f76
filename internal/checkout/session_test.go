package checkout

import (
	"context"
	"errors"
	"testing"

	"scentpos/internal/domain"
)

type stubChecker struct {
	decisions map[string]Decision
	err       error
	calls     int
	lastCode  string
	lastSub   int64
}

func (s *stubChecker) Check(_ context.Context, code string, subtotal int64) (Decision, error) {
	s.calls++
	s.lastCode = code
	s.lastSub = subtotal
	if s.err != nil {
		return Decision{}, s.err
	}
	d, ok := s.decisions[code]
	if !ok {
		return Decision{Reason: "voucher not found"}, nil
	}
	return d, nil
}

func TestSessionApplyVoucherAccepted(t *testing.T) {
	checker := &stubChecker{decisions: map[string]Decision{"PROMO": {Accepted: true, Discount: 20000}}}
	s := NewSession(checker, DefaultPointsRule)
	s.AddProduct(context.Background(), perfume("p1", 50000, 9))

	decision, err := s.ApplyVoucher(context.Background(), "PROMO")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !decision.Accepted || s.Voucher() == nil || s.Voucher().Discount != 20000 {
		t.Fatalf("voucher not applied: %+v %+v", decision, s.Voucher())
	}
	if checker.lastSub != 50000 {
		t.Fatalf("check should see the current subtotal, got %d", checker.lastSub)
	}
}

func TestSessionApplyVoucherRejectedKeepsReason(t *testing.T) {
	checker := &stubChecker{decisions: map[string]Decision{"EXPIRED": {Reason: "voucher expired"}}}
	s := NewSession(checker, DefaultPointsRule)

	decision, err := s.ApplyVoucher(context.Background(), "EXPIRED")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Accepted || s.Voucher() != nil {
		t.Fatalf("rejected voucher must not apply")
	}
	if s.VoucherNote() != "voucher expired" {
		t.Fatalf("expected reason kept, got %q", s.VoucherNote())
	}
}

func TestSessionSecondVoucherLockedUntilRemoval(t *testing.T) {
	checker := &stubChecker{decisions: map[string]Decision{
		"A": {Accepted: true, Discount: 1000},
		"B": {Accepted: true, Discount: 2000},
	}}
	s := NewSession(checker, DefaultPointsRule)
	s.ApplyVoucher(context.Background(), "A")

	_, err := s.ApplyVoucher(context.Background(), "B")
	if !errors.Is(err, ErrVoucherApplied) {
		t.Fatalf("expected ErrVoucherApplied, got %v", err)
	}

	s.RemoveVoucher()
	if _, err := s.ApplyVoucher(context.Background(), "B"); err != nil {
		t.Fatalf("apply after removal failed: %v", err)
	}
	if s.Voucher().Code != "B" {
		t.Fatalf("unexpected voucher: %+v", s.Voucher())
	}
}

func TestSessionRevalidatesVoucherOnCartMutation(t *testing.T) {
	// A percentage-style voucher whose discount the backend derives from
	// the subtotal: dropping a line below the minimum must drop the code.
	checker := &stubChecker{decisions: map[string]Decision{"PCT": {Accepted: true, Discount: 15000}}}
	s := NewSession(checker, DefaultPointsRule)
	ctx := context.Background()
	s.AddProduct(ctx, perfume("p1", 100000, 9))
	s.AddProduct(ctx, perfume("p2", 50000, 9))

	if _, err := s.ApplyVoucher(ctx, "PCT"); err != nil {
		t.Fatalf("apply: %v", err)
	}

	// Backend now reports a smaller discount for the smaller subtotal.
	checker.decisions["PCT"] = Decision{Accepted: true, Discount: 10000}
	s.RemoveProduct(ctx, "p2")
	if s.Voucher() == nil || s.Voucher().Discount != 10000 {
		t.Fatalf("discount not refreshed: %+v", s.Voucher())
	}
	if checker.lastSub != 100000 {
		t.Fatalf("revalidation should use new subtotal, got %d", checker.lastSub)
	}

	// Backend rejects below minimum purchase: voucher is dropped.
	checker.decisions["PCT"] = Decision{Reason: "below minimum purchase"}
	s.SetQuantity(ctx, "p1", 1)
	if s.Voucher() != nil {
		t.Fatalf("voucher should be dropped after rejection")
	}
	if s.VoucherNote() != "below minimum purchase" {
		t.Fatalf("expected rejection reason kept, got %q", s.VoucherNote())
	}
}

func TestSessionRevalidationKeepsVoucherOnNetworkError(t *testing.T) {
	checker := &stubChecker{decisions: map[string]Decision{"A": {Accepted: true, Discount: 5000}}}
	s := NewSession(checker, DefaultPointsRule)
	ctx := context.Background()
	s.AddProduct(ctx, perfume("p1", 50000, 9))
	s.ApplyVoucher(ctx, "A")

	checker.err = errors.New("connection refused")
	s.AddProduct(ctx, perfume("p2", 20000, 9))
	if s.Voucher() == nil || s.Voucher().Discount != 5000 {
		t.Fatalf("voucher should survive a failed re-check: %+v", s.Voucher())
	}
}

func TestSessionReadyToPayGating(t *testing.T) {
	s := NewSession(&stubChecker{}, DefaultPointsRule)
	if s.ReadyToPay() {
		t.Fatalf("empty session must not be ready")
	}
	s.AddProduct(context.Background(), perfume("p1", 50000, 9))
	if s.ReadyToPay() {
		t.Fatalf("payment method still missing")
	}
	s.SelectPaymentMethod("pm-cash")
	if !s.ReadyToPay() {
		t.Fatalf("expected ready to pay")
	}
}

func TestSessionSettleUsesCurrentTotal(t *testing.T) {
	s := NewSession(&stubChecker{}, DefaultPointsRule)
	ctx := context.Background()
	s.AddProduct(ctx, perfume("p1", 50000, 9))
	s.SetQuantity(ctx, "p1", 2)

	if _, err := s.Settle(50000); !errors.Is(err, ErrInsufficientCash) {
		t.Fatalf("expected insufficient cash, got %v", err)
	}
	settlement, err := s.Settle(150000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if settlement.Change != 50000 {
		t.Fatalf("unexpected change: %+v", settlement)
	}
}

func TestSessionResetClearsEverything(t *testing.T) {
	checker := &stubChecker{decisions: map[string]Decision{"A": {Accepted: true, Discount: 5000}}}
	s := NewSession(checker, DefaultPointsRule)
	ctx := context.Background()
	s.AddProduct(ctx, perfume("p1", 50000, 9))
	s.SelectCustomer(&domain.Customer{ID: "c1", Points: 20})
	s.SetUsePoints(true)
	s.SelectPaymentMethod("pm-cash")
	s.ApplyVoucher(ctx, "A")

	s.Reset()
	if !s.Cart().IsEmpty() || s.Customer() != nil || s.Voucher() != nil || s.PaymentMethodID() != "" {
		t.Fatalf("session not fully reset")
	}
	if got := s.Totals(); got != (Totals{}) {
		t.Fatalf("expected zero totals after reset, got %+v", got)
	}
}

func TestSessionClearingCustomerDisablesPoints(t *testing.T) {
	s := NewSession(&stubChecker{}, DefaultPointsRule)
	ctx := context.Background()
	s.AddProduct(ctx, perfume("p1", 50000, 9))
	s.SelectCustomer(&domain.Customer{ID: "c1", Points: 20})
	s.SetUsePoints(true)
	s.SelectCustomer(nil)
	if got := s.Totals(); got.PointsDiscount != 0 {
		t.Fatalf("points discount should drop with the customer, got %+v", got)
	}
}
