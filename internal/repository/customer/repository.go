package customer

import (
	"context"

	"scentpos/internal/domain"
)

type Repository interface {
	Search(ctx context.Context, query string, limit int) ([]domain.Customer, error)
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
	Create(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	Update(ctx context.Context, c domain.Customer) (*domain.Customer, error)
	Delete(ctx context.Context, id string) error
	CountWithPhone(ctx context.Context) (int, error)
	PointHistory(ctx context.Context, customerID string) ([]domain.PointEntry, error)
}
