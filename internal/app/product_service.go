package app

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/jsamuelsen/quoting-service/internal/domain"
	"github.com/jsamuelsen/quoting-service/internal/ports"
)

const productCacheKeyPrefix = "product:"

// ProductService serves catalog lookups from the order platform, optionally
// through a cache.
type ProductService struct {
	orders ports.OrderPlatform
	cache  ports.Cache
	ttl    time.Duration
	logger *slog.Logger
}

// ProductServiceConfig contains the dependencies of the product service.
type ProductServiceConfig struct {
	Orders ports.OrderPlatform

	// Cache is optional. Cache failures are logged and bypassed.
	Cache    ports.Cache
	CacheTTL time.Duration
	Logger   *slog.Logger
}

// NewProductService creates a product service. It panics without Orders.
func NewProductService(cfg ProductServiceConfig) *ProductService {
	if cfg.Orders == nil {
		panic("app: order platform is required")
	}

	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	return &ProductService{
		orders: cfg.Orders,
		cache:  cfg.Cache,
		ttl:    cfg.CacheTTL,
		logger: cfg.Logger,
	}
}

// GetProduct returns the product with id.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	if product, ok := s.cached(ctx, id); ok {
		return product, nil
	}

	product, err := s.orders.FetchProduct(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "fetching product failed",
			slog.String("product_id", id),
			slog.Any("error", err),
		)

		return nil, err
	}

	s.store(ctx, id, product)

	return product, nil
}

func (s *ProductService) cached(ctx context.Context, id string) (*domain.Product, bool) {
	if s.cache == nil {
		return nil, false
	}

	raw, err := s.cache.Get(ctx, productCacheKeyPrefix+id)
	if err != nil {
		if !domain.IsNotFound(err) {
			s.logger.WarnContext(ctx, "product cache read failed", slog.Any("error", err))
		}

		return nil, false
	}

	var product domain.Product
	if err := json.Unmarshal(raw, &product); err != nil {
		s.logger.WarnContext(ctx, "discarding undecodable cache entry",
			slog.String("product_id", id),
			slog.Any("error", err),
		)

		_ = s.cache.Delete(ctx, productCacheKeyPrefix+id)

		return nil, false
	}

	return &product, true
}

func (s *ProductService) store(ctx context.Context, id string, product *domain.Product) {
	if s.cache == nil {
		return
	}

	raw, err := json.Marshal(product)
	if err != nil {
		return
	}

	if err := s.cache.Set(ctx, productCacheKeyPrefix+id, raw, s.ttl); err != nil {
		s.logger.WarnContext(ctx, "product cache write failed", slog.Any("error", err))
	}
}
