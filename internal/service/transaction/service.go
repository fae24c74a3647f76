package transaction

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"scentpos/internal/checkout"
	"scentpos/internal/domain"
	txrepo "scentpos/internal/repository/transaction"
)

var (
	// ErrEmptySale rejects a transaction with no items.
	ErrEmptySale = fmt.Errorf("%w: items required", domain.ErrInvalid)
	// ErrPointsIneligible rejects redemption without a qualifying customer.
	ErrPointsIneligible = fmt.Errorf("%w: customer not eligible for points redemption", domain.ErrInvalid)
)

// VoucherRejectedError carries the validator's reason back to the
// terminal verbatim.
type VoucherRejectedError struct {
	Reason string
}

func (e *VoucherRejectedError) Error() string {
	return "voucher rejected: " + e.Reason
}

type transactionRepo interface {
	Create(ctx context.Context, in txrepo.CreateInput) (*domain.Transaction, error)
	List(ctx context.Context, limit int) ([]domain.Transaction, error)
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
}

type productRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Product, error)
}

type customerRepo interface {
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

type voucherRepo interface {
	GetByCode(ctx context.Context, code string) (*domain.Voucher, error)
}

type paymentMethodRepo interface {
	GetByID(ctx context.Context, id string) (*domain.PaymentMethod, error)
}

type shiftRepo interface {
	GetActive(ctx context.Context) (*domain.Shift, error)
}

type publisher interface {
	PublishTransactionCreated(ctx context.Context, t *domain.Transaction) error
}

type catalogInvalidator interface {
	InvalidateCache(ctx context.Context)
}

// Rules parameterizes the loyalty program.
type Rules struct {
	Points checkout.PointsRule
	// EarnStep is the rupiah of final total that earns one point.
	EarnStep int64
}

type Service struct {
	repo      transactionRepo
	products  productRepo
	customers customerRepo
	vouchers  voucherRepo
	methods   paymentMethodRepo
	shifts    shiftRepo
	checker   checkout.VoucherChecker
	events    publisher
	catalog   catalogInvalidator
	rules     Rules
	logger    *log.Logger
}

type Deps struct {
	Repo      transactionRepo
	Products  productRepo
	Customers customerRepo
	Vouchers  voucherRepo
	Methods   paymentMethodRepo
	Shifts    shiftRepo
	Checker   checkout.VoucherChecker
	Events    publisher
	Catalog   catalogInvalidator
}

func New(deps Deps, rules Rules, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{
		repo:      deps.Repo,
		products:  deps.Products,
		customers: deps.Customers,
		vouchers:  deps.Vouchers,
		methods:   deps.Methods,
		shifts:    deps.Shifts,
		checker:   deps.Checker,
		events:    deps.Events,
		catalog:   deps.Catalog,
		rules:     rules,
		logger:    logger,
	}
}

type ItemInput struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type CreateInput struct {
	Items           []ItemInput `json:"items"`
	CustomerID      *string     `json:"customerId,omitempty"`
	PaymentMethodID string      `json:"paymentMethodId"`
	VoucherCode     string      `json:"voucherCode,omitempty"`
	UsePoints       bool        `json:"usePoints"`
	CashPaid        int64       `json:"cashPaid"`
}

// Create settles one sale. All amounts are recomputed server side with
// the same pricing calculator the terminals use; client arithmetic is
// never trusted. The repository applies stock, points and voucher
// side effects atomically, so a failure leaves the cart intact on the
// terminal and nothing changed here.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Transaction, error) {
	if len(in.Items) == 0 {
		return nil, ErrEmptySale
	}
	if _, err := s.methods.GetByID(ctx, in.PaymentMethodID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown payment method", domain.ErrInvalid)
		}
		return nil, err
	}

	lines, err := s.buildLines(ctx, in.Items)
	if err != nil {
		return nil, err
	}

	var customer *domain.Customer
	if in.CustomerID != nil {
		customer, err = s.customers.GetByID(ctx, *in.CustomerID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown customer", domain.ErrInvalid)
			}
			return nil, err
		}
	}
	if in.UsePoints && (customer == nil || customer.Points < s.rules.Points.Block) {
		return nil, ErrPointsIneligible
	}

	var subtotal int64
	for _, line := range lines {
		subtotal += line.Product.SellingPrice * int64(line.Quantity)
	}

	var voucherDiscount int64
	var voucherID string
	if in.VoucherCode != "" {
		decision, err := s.checker.Check(ctx, in.VoucherCode, subtotal)
		if err != nil {
			return nil, err
		}
		if !decision.Accepted {
			return nil, &VoucherRejectedError{Reason: decision.Reason}
		}
		voucherDiscount = decision.Discount
		v, err := s.vouchers.GetByCode(ctx, in.VoucherCode)
		if err != nil {
			return nil, err
		}
		voucherID = v.ID
	}

	totals := checkout.CalculateTotals(lines, customer, in.UsePoints, voucherDiscount, s.rules.Points)
	settlement, err := checkout.Settle(totals.Total, in.CashPaid)
	if err != nil {
		return nil, err
	}

	t := domain.Transaction{
		CustomerID:      in.CustomerID,
		PaymentMethodID: in.PaymentMethodID,
		VoucherCode:     in.VoucherCode,
		UsedPoints:      in.UsePoints && totals.PointsDiscount > 0,
		Subtotal:        totals.Subtotal,
		PointsDiscount:  totals.PointsDiscount,
		VoucherDiscount: totals.VoucherDiscount,
		Total:           totals.Total,
		CashPaid:        settlement.CashPaid,
		Change:          settlement.Change,
	}
	for _, line := range lines {
		t.Items = append(t.Items, domain.TransactionItem{
			ProductID:   line.Product.ID,
			ProductName: line.Product.Name,
			UnitPrice:   line.Product.SellingPrice,
			Quantity:    line.Quantity,
			Total:       line.Product.SellingPrice * int64(line.Quantity),
		})
	}

	// Sales recorded while a shift is open count toward its till.
	if shift, err := s.shifts.GetActive(ctx); err == nil {
		t.ShiftID = &shift.ID
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	createIn := txrepo.CreateInput{
		Transaction: t,
		VoucherID:   voucherID,
	}
	if t.UsedPoints {
		createIn.RedeemPoints = s.rules.Points.Block
	}
	if customer != nil && s.rules.EarnStep > 0 {
		createIn.EarnPoints = int(totals.Total / s.rules.EarnStep)
	}

	created, err := s.repo.Create(ctx, createIn)
	if err != nil {
		return nil, err
	}

	if s.catalog != nil {
		s.catalog.InvalidateCache(ctx)
	}
	if s.events != nil {
		if err := s.events.PublishTransactionCreated(ctx, created); err != nil {
			s.logger.Printf("transaction service: publish id=%s error=%v", created.ID, err)
		}
	}
	return created, nil
}

func (s *Service) buildLines(ctx context.Context, items []ItemInput) ([]checkout.Line, error) {
	merged := make(map[string]int, len(items))
	order := make([]string, 0, len(items))
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrInvalid)
		}
		if _, seen := merged[item.ProductID]; !seen {
			order = append(order, item.ProductID)
		}
		merged[item.ProductID] += item.Quantity
	}

	lines := make([]checkout.Line, 0, len(order))
	for _, id := range order {
		product, err := s.products.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("%w: unknown product %s", domain.ErrInvalid, id)
			}
			return nil, err
		}
		qty := merged[id]
		if qty > product.Stock {
			return nil, domain.ErrInsufficientStock
		}
		lines = append(lines, checkout.Line{Product: *product, Quantity: qty})
	}
	return lines, nil
}

func (s *Service) List(ctx context.Context, limit int) ([]domain.Transaction, error) {
	return s.repo.List(ctx, limit)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Transaction, error) {
	return s.repo.GetByID(ctx, id)
}
