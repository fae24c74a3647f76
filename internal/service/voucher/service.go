package voucher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"scentpos/internal/checkout"
	"scentpos/internal/domain"
	voucherrepo "scentpos/internal/repository/voucher"
)

// Rejection reasons returned to clients verbatim. The taxonomy lives
// here; terminals never reproduce these rules.
const (
	ReasonNotFound     = "voucher not found"
	ReasonInactive     = "voucher inactive"
	ReasonNotStarted   = "voucher not yet active"
	ReasonExpired      = "voucher expired"
	ReasonBelowMinimum = "below minimum purchase"
	ReasonUsedUp       = "usage limit reached"
)

type repo interface {
	List(ctx context.Context) ([]domain.Voucher, error)
	GetByCode(ctx context.Context, code string) (*domain.Voucher, error)
	Create(ctx context.Context, v domain.Voucher) (*domain.Voucher, error)
	Update(ctx context.Context, v domain.Voucher) (*domain.Voucher, error)
	Delete(ctx context.Context, id string) error
}

type Service struct {
	repo repo
	now  func() time.Time
}

func New(r voucherrepo.Repository) *Service {
	return &Service{repo: r, now: time.Now}
}

// Check decides whether code is usable against subtotal and computes
// the discount. It satisfies checkout.VoucherChecker, so a terminal
// session can hold the service directly.
func (s *Service) Check(ctx context.Context, code string, subtotal int64) (checkout.Decision, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return checkout.Decision{Reason: ReasonNotFound}, nil
	}
	v, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return checkout.Decision{Reason: ReasonNotFound}, nil
		}
		return checkout.Decision{}, err
	}

	now := s.now()
	switch {
	case !v.Active:
		return checkout.Decision{Reason: ReasonInactive}, nil
	case now.Before(v.StartsAt):
		return checkout.Decision{Reason: ReasonNotStarted}, nil
	case now.After(v.EndsAt):
		return checkout.Decision{Reason: ReasonExpired}, nil
	case v.UsageLimit > 0 && v.UsageCount >= v.UsageLimit:
		return checkout.Decision{Reason: ReasonUsedUp}, nil
	case subtotal < v.MinPurchase:
		return checkout.Decision{Reason: ReasonBelowMinimum}, nil
	}

	return checkout.Decision{Accepted: true, Discount: discountFor(v, subtotal)}, nil
}

func discountFor(v *domain.Voucher, subtotal int64) int64 {
	var discount int64
	switch v.Kind {
	case domain.DiscountPercentage:
		discount = subtotal * v.Value / 100
		if v.MaxDiscount > 0 && discount > v.MaxDiscount {
			discount = v.MaxDiscount
		}
	default:
		discount = v.Value
	}
	if discount > subtotal {
		discount = subtotal
	}
	return discount
}

func (s *Service) List(ctx context.Context) ([]domain.Voucher, error) {
	return s.repo.List(ctx)
}

func (s *Service) Create(ctx context.Context, v domain.Voucher) (*domain.Voucher, error) {
	if err := validate(&v); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, v)
}

func (s *Service) Update(ctx context.Context, v domain.Voucher) (*domain.Voucher, error) {
	if strings.TrimSpace(v.ID) == "" {
		return nil, fmt.Errorf("%w: id required", domain.ErrInvalid)
	}
	if err := validate(&v); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, v)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func validate(v *domain.Voucher) error {
	v.Code = strings.ToUpper(strings.TrimSpace(v.Code))
	if v.Code == "" {
		return fmt.Errorf("%w: code required", domain.ErrInvalid)
	}
	switch v.Kind {
	case domain.DiscountFixed:
		if v.Value <= 0 {
			return fmt.Errorf("%w: value must be positive", domain.ErrInvalid)
		}
	case domain.DiscountPercentage:
		if v.Value <= 0 || v.Value > 100 {
			return fmt.Errorf("%w: percentage must be in 1..100", domain.ErrInvalid)
		}
	default:
		return fmt.Errorf("%w: unsupported discount kind", domain.ErrInvalid)
	}
	if v.MinPurchase < 0 || v.MaxDiscount < 0 || v.UsageLimit < 0 {
		return fmt.Errorf("%w: amounts must not be negative", domain.ErrInvalid)
	}
	if v.EndsAt.Before(v.StartsAt) {
		return fmt.Errorf("%w: validity window inverted", domain.ErrInvalid)
	}
	return nil
}
