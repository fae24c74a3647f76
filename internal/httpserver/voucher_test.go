package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"scentpos/internal/checkout"
	"scentpos/internal/domain"
	vouchersvc "scentpos/internal/service/voucher"
)

type stubVoucherRepo struct {
	vouchers map[string]*domain.Voucher
}

func (s *stubVoucherRepo) List(_ context.Context) ([]domain.Voucher, error) { return nil, nil }

func (s *stubVoucherRepo) GetByCode(_ context.Context, code string) (*domain.Voucher, error) {
	if v, ok := s.vouchers[code]; ok {
		return v, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubVoucherRepo) Create(_ context.Context, v domain.Voucher) (*domain.Voucher, error) {
	v.ID = "v-new"
	return &v, nil
}

func (s *stubVoucherRepo) Update(_ context.Context, v domain.Voucher) (*domain.Voucher, error) {
	return &v, nil
}

func (s *stubVoucherRepo) Delete(_ context.Context, _ string) error { return nil }

func activeVoucher() *domain.Voucher {
	return &domain.Voucher{
		ID:       "v1",
		Code:     "HEMAT20",
		Kind:     domain.DiscountFixed,
		Value:    20000,
		Active:   true,
		StartsAt: time.Now().Add(-time.Hour),
		EndsAt:   time.Now().Add(time.Hour),
	}
}

func TestValidateVoucherAccepted(t *testing.T) {
	repo := &stubVoucherRepo{vouchers: map[string]*domain.Voucher{"HEMAT20": activeVoucher()}}
	router := testRouter(Deps{Vouchers: vouchersvc.New(repo)})

	req := httptest.NewRequest(http.MethodPost, "/api/vouchers/validate", strings.NewReader(`{"code":"hemat20","subtotal":150000}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp checkout.Decision
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Accepted || resp.Discount != 20000 {
		t.Fatalf("unexpected decision: %+v", resp)
	}
}

func TestValidateVoucherRejectedWithReason(t *testing.T) {
	router := testRouter(Deps{Vouchers: vouchersvc.New(&stubVoucherRepo{})})

	req := httptest.NewRequest(http.MethodPost, "/api/vouchers/validate", strings.NewReader(`{"code":"NOPE","subtotal":150000}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp checkout.Decision
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Accepted || resp.Reason != vouchersvc.ReasonNotFound {
		t.Fatalf("unexpected decision: %+v", resp)
	}
}

func TestCreateVoucherInvertedWindow(t *testing.T) {
	router := testRouter(Deps{Vouchers: vouchersvc.New(&stubVoucherRepo{})})

	body := `{"code":"X","kind":"FIXED","value":5000,"startsAt":"2026-04-01T00:00:00Z","endsAt":"2026-03-01T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/vouchers", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}
