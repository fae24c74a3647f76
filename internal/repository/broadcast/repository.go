package broadcast

import (
	"context"

	"scentpos/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, b domain.Broadcast) (*domain.Broadcast, error)
	List(ctx context.Context, limit int) ([]domain.Broadcast, error)
}
