package voucher

import (
	"context"

	"scentpos/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Voucher, error)
	GetByCode(ctx context.Context, code string) (*domain.Voucher, error)
	Create(ctx context.Context, v domain.Voucher) (*domain.Voucher, error)
	Update(ctx context.Context, v domain.Voucher) (*domain.Voucher, error)
	Delete(ctx context.Context, id string) error
}
