package voucher

import (
	"context"
	"errors"
	"testing"
	"time"

	"scentpos/internal/domain"
)

type stubRepo struct {
	voucher *domain.Voucher
	err     error
}

func (s *stubRepo) List(_ context.Context) ([]domain.Voucher, error) { return nil, nil }

func (s *stubRepo) GetByCode(_ context.Context, _ string) (*domain.Voucher, error) {
	return s.voucher, s.err
}

func (s *stubRepo) Create(_ context.Context, v domain.Voucher) (*domain.Voucher, error) {
	return &v, nil
}

func (s *stubRepo) Update(_ context.Context, v domain.Voucher) (*domain.Voucher, error) {
	return &v, nil
}

func (s *stubRepo) Delete(_ context.Context, _ string) error { return nil }

var frozen = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func serviceWith(v *domain.Voucher, err error) *Service {
	return &Service{repo: &stubRepo{voucher: v, err: err}, now: func() time.Time { return frozen }}
}

func validVoucher() *domain.Voucher {
	return &domain.Voucher{
		ID:          "v1",
		Code:        "PROMO",
		Kind:        domain.DiscountFixed,
		Value:       20000,
		MinPurchase: 100000,
		Active:      true,
		StartsAt:    frozen.AddDate(0, -1, 0),
		EndsAt:      frozen.AddDate(0, 1, 0),
		UsageLimit:  10,
	}
}

func TestCheckNotFound(t *testing.T) {
	svc := serviceWith(nil, domain.ErrNotFound)
	d, err := svc.Check(context.Background(), "NOPE", 150000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Accepted || d.Reason != ReasonNotFound {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestCheckEmptyCode(t *testing.T) {
	svc := serviceWith(validVoucher(), nil)
	d, _ := svc.Check(context.Background(), "   ", 150000)
	if d.Accepted || d.Reason != ReasonNotFound {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestCheckRejectionTaxonomy(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*domain.Voucher)
		sub    int64
		reason string
	}{
		{"inactive", func(v *domain.Voucher) { v.Active = false }, 150000, ReasonInactive},
		{"not started", func(v *domain.Voucher) { v.StartsAt = frozen.AddDate(0, 0, 1) }, 150000, ReasonNotStarted},
		{"expired", func(v *domain.Voucher) { v.EndsAt = frozen.AddDate(0, 0, -1) }, 150000, ReasonExpired},
		{"used up", func(v *domain.Voucher) { v.UsageCount = 10 }, 150000, ReasonUsedUp},
		{"below minimum", func(v *domain.Voucher) {}, 99999, ReasonBelowMinimum},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := validVoucher()
			tc.mutate(v)
			d, err := serviceWith(v, nil).Check(context.Background(), "PROMO", tc.sub)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if d.Accepted || d.Reason != tc.reason {
				t.Fatalf("expected reason %q, got %+v", tc.reason, d)
			}
		})
	}
}

func TestCheckUnlimitedUsage(t *testing.T) {
	v := validVoucher()
	v.UsageLimit = 0
	v.UsageCount = 9999
	d, _ := serviceWith(v, nil).Check(context.Background(), "PROMO", 150000)
	if !d.Accepted {
		t.Fatalf("zero usage limit means unlimited, got %+v", d)
	}
}

func TestCheckFixedDiscount(t *testing.T) {
	d, _ := serviceWith(validVoucher(), nil).Check(context.Background(), "promo", 150000)
	if !d.Accepted || d.Discount != 20000 {
		t.Fatalf("unexpected decision: %+v", d)
	}
}

func TestCheckFixedDiscountCappedAtSubtotal(t *testing.T) {
	v := validVoucher()
	v.Value = 500000
	v.MinPurchase = 0
	d, _ := serviceWith(v, nil).Check(context.Background(), "PROMO", 120000)
	if d.Discount != 120000 {
		t.Fatalf("discount must not exceed subtotal, got %+v", d)
	}
}

func TestCheckPercentageDiscount(t *testing.T) {
	v := validVoucher()
	v.Kind = domain.DiscountPercentage
	v.Value = 10
	d, _ := serviceWith(v, nil).Check(context.Background(), "PROMO", 150000)
	if d.Discount != 15000 {
		t.Fatalf("expected 10%% of 150000, got %+v", d)
	}
}

func TestCheckPercentageDiscountCapped(t *testing.T) {
	v := validVoucher()
	v.Kind = domain.DiscountPercentage
	v.Value = 50
	v.MaxDiscount = 40000
	d, _ := serviceWith(v, nil).Check(context.Background(), "PROMO", 200000)
	if d.Discount != 40000 {
		t.Fatalf("expected cap at 40000, got %+v", d)
	}
}

func TestCheckRepoError(t *testing.T) {
	svc := serviceWith(nil, errors.New("boom"))
	_, err := svc.Check(context.Background(), "PROMO", 150000)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected repo error, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	svc := serviceWith(nil, nil)
	base := validVoucher()

	_, err := svc.Create(context.Background(), domain.Voucher{Kind: domain.DiscountFixed, Value: 1000})
	if err == nil || err.Error() != "code required" {
		t.Fatalf("expected code error, got %v", err)
	}

	v := *base
	v.Kind = domain.DiscountPercentage
	v.Value = 150
	if _, err := svc.Create(context.Background(), v); err == nil {
		t.Fatalf("expected percentage range error")
	}

	v = *base
	v.EndsAt = v.StartsAt.AddDate(0, 0, -1)
	if _, err := svc.Create(context.Background(), v); err == nil {
		t.Fatalf("expected window error")
	}

	v = *base
	v.Code = "  lower "
	created, err := svc.Create(context.Background(), v)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Code != "LOWER" {
		t.Fatalf("code not normalized: %q", created.Code)
	}
}
