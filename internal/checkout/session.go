package checkout

import (
	"context"
	"errors"

	"scentpos/internal/domain"
)

var (
	// ErrVoucherApplied blocks a second code while one is active.
	ErrVoucherApplied = errors.New("a voucher is already applied")
	// ErrVoucherRejected wraps a backend rejection of the submitted code.
	ErrVoucherRejected = errors.New("voucher rejected")
)

// Decision is the backend's answer to a voucher check. Reason carries
// the backend's rejection taxonomy verbatim; the client never
// reproduces those rules.
type Decision struct {
	Accepted bool   `json:"accepted"`
	Discount int64  `json:"discount,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// VoucherChecker asks the backend whether a code is usable against the
// given subtotal.
type VoucherChecker interface {
	Check(ctx context.Context, code string, subtotal int64) (Decision, error)
}

// AppliedVoucher is the cached result of an accepted check.
type AppliedVoucher struct {
	Code     string `json:"code"`
	Discount int64  `json:"discount"`
}

// Session is the transient state of one checkout: cart lines, selected
// customer, points-redemption flag, applied voucher and payment method.
// It is created empty, reset after a successful submission, and never
// persisted.
//
// The applied voucher is re-validated against the backend on every cart
// mutation; a code the backend no longer accepts is dropped and the
// rejection reason kept for display.
type Session struct {
	cart    *Cart
	checker VoucherChecker
	rule    PointsRule

	customer        *domain.Customer
	usePoints       bool
	voucher         *AppliedVoucher
	voucherNote     string
	paymentMethodID string
}

func NewSession(checker VoucherChecker, rule PointsRule) *Session {
	return &Session{cart: NewCart(), checker: checker, rule: rule}
}

func (s *Session) Cart() *Cart { return s.cart }

// AddProduct puts one unit in the cart and refreshes the voucher.
func (s *Session) AddProduct(ctx context.Context, product domain.Product) error {
	if err := s.cart.Add(product); err != nil {
		return err
	}
	s.revalidateVoucher(ctx)
	return nil
}

func (s *Session) SetQuantity(ctx context.Context, productID string, quantity int) {
	s.cart.SetQuantity(productID, quantity)
	s.revalidateVoucher(ctx)
}

func (s *Session) RemoveProduct(ctx context.Context, productID string) {
	s.cart.Remove(productID)
	s.revalidateVoucher(ctx)
}

// SelectCustomer sets or clears the customer. Clearing also turns
// points redemption off.
func (s *Session) SelectCustomer(c *domain.Customer) {
	s.customer = c
	if c == nil {
		s.usePoints = false
	}
}

func (s *Session) Customer() *domain.Customer { return s.customer }

func (s *Session) SetUsePoints(on bool) {
	s.usePoints = on
}

func (s *Session) SelectPaymentMethod(id string) {
	s.paymentMethodID = id
}

func (s *Session) PaymentMethodID() string { return s.paymentMethodID }

// ApplyVoucher submits a code to the backend. The code input stays
// locked until RemoveVoucher once a voucher is accepted.
func (s *Session) ApplyVoucher(ctx context.Context, code string) (Decision, error) {
	if s.voucher != nil {
		return Decision{}, ErrVoucherApplied
	}
	decision, err := s.checker.Check(ctx, code, s.Totals().Subtotal)
	if err != nil {
		return Decision{}, err
	}
	if !decision.Accepted {
		s.voucherNote = decision.Reason
		return decision, nil
	}
	s.voucher = &AppliedVoucher{Code: code, Discount: decision.Discount}
	s.voucherNote = ""
	return decision, nil
}

// RemoveVoucher clears the applied voucher so a new code can be entered.
func (s *Session) RemoveVoucher() {
	s.voucher = nil
	s.voucherNote = ""
}

func (s *Session) Voucher() *AppliedVoucher { return s.voucher }

// VoucherNote is the last rejection reason, kept for display.
func (s *Session) VoucherNote() string { return s.voucherNote }

// revalidateVoucher re-checks the applied code against the new
// subtotal. A backend error keeps the old discount rather than
// punishing the shopper for a flaky network.
func (s *Session) revalidateVoucher(ctx context.Context) {
	if s.voucher == nil {
		return
	}
	subtotal := s.subtotal()
	decision, err := s.checker.Check(ctx, s.voucher.Code, subtotal)
	if err != nil {
		return
	}
	if !decision.Accepted {
		s.voucherNote = decision.Reason
		s.voucher = nil
		return
	}
	s.voucher.Discount = decision.Discount
}

func (s *Session) subtotal() int64 {
	var sum int64
	for _, line := range s.cart.Lines() {
		sum += line.Product.SellingPrice * int64(line.Quantity)
	}
	return sum
}

// Totals recomputes the derived amounts from current state.
func (s *Session) Totals() Totals {
	var voucherDiscount int64
	if s.voucher != nil {
		voucherDiscount = s.voucher.Discount
	}
	return CalculateTotals(s.cart.Lines(), s.customer, s.usePoints, voucherDiscount, s.rule)
}

// ReadyToPay gates the payment step: at least one line and a selected
// payment method.
func (s *Session) ReadyToPay() bool {
	return !s.cart.IsEmpty() && s.paymentMethodID != ""
}

// Settle validates the tendered cash against the current total.
func (s *Session) Settle(cashPaid int64) (Settlement, error) {
	return Settle(s.Totals().Total, cashPaid)
}

// Reset clears the session after a successful transaction.
func (s *Session) Reset() {
	s.cart.Clear()
	s.customer = nil
	s.usePoints = false
	s.voucher = nil
	s.voucherNote = ""
	s.paymentMethodID = ""
}
