package cache

import (
	"context"
	"errors"

	"scentpos/internal/domain"
)

// ProductCache holds the full catalog listing between mutations.
type ProductCache interface {
	Get(ctx context.Context) ([]domain.Product, error)
	Set(ctx context.Context, products []domain.Product) error
	Invalidate(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
