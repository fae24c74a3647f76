package paymentmethod

import (
	"context"

	"scentpos/internal/domain"
)

type Repository interface {
	List(ctx context.Context) ([]domain.PaymentMethod, error)
	GetByID(ctx context.Context, id string) (*domain.PaymentMethod, error)
}
