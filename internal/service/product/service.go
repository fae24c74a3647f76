package product

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"scentpos/internal/cache"
	"scentpos/internal/domain"
	productrepo "scentpos/internal/repository/product"
)

type Service struct {
	repo   productrepo.Repository
	cache  cache.ProductCache
	logger *log.Logger
}

// New builds the catalog service. cache may be nil when Redis is not
// configured.
func New(repo productrepo.Repository, productCache cache.ProductCache, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{repo: repo, cache: productCache, logger: logger}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		products, err := s.cache.Get(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Printf("product service: cache get error=%v", err)
		}
	}
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, products); err != nil {
			s.logger.Printf("product service: cache set error=%v", err)
		}
	}
	return products, nil
}

func (s *Service) Search(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	return s.repo.Search(ctx, strings.TrimSpace(query), limit)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) Create(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if err := validate(&p); err != nil {
		return nil, err
	}
	created, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return created, nil
}

func (s *Service) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(p.ID) == "" {
		return nil, fmt.Errorf("%w: id required", domain.ErrInvalid)
	}
	if err := validate(&p); err != nil {
		return nil, err
	}
	updated, err := s.repo.Update(ctx, p)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// AdjustStock applies a stock-opname count: the physical count replaces
// the recorded one and the difference is kept for the report.
func (s *Service) AdjustStock(ctx context.Context, productID string, actualStock int, notes string) (*domain.StockAdjustment, error) {
	if actualStock < 0 {
		return nil, fmt.Errorf("%w: actual stock must not be negative", domain.ErrInvalid)
	}
	adj, err := s.repo.AdjustStock(ctx, productID, actualStock, strings.TrimSpace(notes))
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return adj, nil
}

// InvalidateCache drops the cached listing after an out-of-band stock
// mutation (transaction creation).
func (s *Service) InvalidateCache(ctx context.Context) {
	s.invalidate(ctx)
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Printf("product service: cache invalidate error=%v", err)
	}
}

func validate(p *domain.Product) error {
	p.Code = strings.ToUpper(strings.TrimSpace(p.Code))
	p.Name = strings.TrimSpace(p.Name)
	if p.Code == "" {
		return fmt.Errorf("%w: code required", domain.ErrInvalid)
	}
	if p.Name == "" {
		return fmt.Errorf("%w: name required", domain.ErrInvalid)
	}
	if p.Type != domain.ProductPerfume && p.Type != domain.ProductBottle {
		return fmt.Errorf("%w: unsupported product type", domain.ErrInvalid)
	}
	if p.CostPrice < 0 || p.SellingPrice <= 0 {
		return fmt.Errorf("%w: prices must be positive", domain.ErrInvalid)
	}
	if p.Stock < 0 {
		return fmt.Errorf("%w: stock must not be negative", domain.ErrInvalid)
	}
	return nil
}
