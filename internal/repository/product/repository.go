package product

import (
	"context"

	"scentpos/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Search(ctx context.Context, query string, limit int) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p domain.Product) (*domain.Product, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	AdjustStock(ctx context.Context, productID string, actualStock int, notes string) (*domain.StockAdjustment, error)
}
