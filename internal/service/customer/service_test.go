package customer

import (
	"context"
	"errors"
	"testing"

	"scentpos/internal/domain"
)

type stubRepo struct {
	created *domain.Customer
	err     error
}

func (s *stubRepo) Search(_ context.Context, _ string, _ int) ([]domain.Customer, error) {
	return nil, nil
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Customer, error) {
	return nil, domain.ErrNotFound
}

func (s *stubRepo) Create(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.created = &c
	return &c, nil
}

func (s *stubRepo) Update(_ context.Context, c domain.Customer) (*domain.Customer, error) {
	return &c, s.err
}

func (s *stubRepo) Delete(_ context.Context, _ string) error { return s.err }

func (s *stubRepo) CountWithPhone(_ context.Context) (int, error) { return 0, nil }

func (s *stubRepo) PointHistory(_ context.Context, _ string) ([]domain.PointEntry, error) {
	return nil, nil
}

func TestCreateValidPhones(t *testing.T) {
	svc := New(&stubRepo{})
	for _, phone := range []string{"081234567890", "+6281234567890", "123456789"} {
		if _, err := svc.Create(context.Background(), domain.Customer{Name: "Sari", Phone: phone}); err != nil {
			t.Fatalf("phone %q should be valid: %v", phone, err)
		}
	}
}

func TestCreateInvalidPhones(t *testing.T) {
	svc := New(&stubRepo{})
	for _, phone := range []string{"", "12345678", "08123abc4567", "+", "1234567890123456"} {
		_, err := svc.Create(context.Background(), domain.Customer{Name: "Sari", Phone: phone})
		if !errors.Is(err, ErrInvalidPhone) {
			t.Fatalf("phone %q should be invalid, got %v", phone, err)
		}
	}
}

func TestCreateRequiresName(t *testing.T) {
	svc := New(&stubRepo{})
	if _, err := svc.Create(context.Background(), domain.Customer{Name: "  ", Phone: "081234567890"}); err == nil {
		t.Fatalf("expected name error")
	}
}

func TestCreateDuplicatePhoneSurfaced(t *testing.T) {
	svc := New(&stubRepo{err: domain.ErrConflict})
	_, err := svc.Create(context.Background(), domain.Customer{Name: "Sari", Phone: "081234567890"})
	if !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestUpdateRequiresID(t *testing.T) {
	svc := New(&stubRepo{})
	if _, err := svc.Update(context.Background(), domain.Customer{Name: "Sari", Phone: "081234567890"}); err == nil {
		t.Fatalf("expected id error")
	}
}
