package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Festongithub/onesoko-storefront/internal/cache"
	"github.com/Festongithub/onesoko-storefront/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Fetcher is the backend call the service falls back to on a cache miss.
type Fetcher interface {
	List(ctx context.Context) ([]domain.Product, error)
}

// Service is the read path for the product catalog: cache first, then
// backend, with concurrent misses collapsed into a single fetch.
type Service struct {
	fetcher Fetcher
	cache   cache.CatalogCache // nil when caching is disabled
	log     *zap.Logger
	sfg     singleflight.Group
}

func NewService(fetcher Fetcher, catalogCache cache.CatalogCache, log *zap.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   catalogCache,
		log:     log,
	}
}

// Products returns the current product collection. Cache failures are
// logged and degrade to a direct backend fetch, never surfaced.
func (s *Service) Products(ctx context.Context) ([]domain.Product, error) {
	v, err, _ := s.sfg.Do("products", func() (interface{}, error) {
		if s.cache != nil {
			products, err := s.cache.Get(ctx)
			if err == nil {
				return products, nil
			}
			if !errors.Is(err, cache.ErrCacheMiss) {
				s.log.Warn("catalog cache get failed", zap.Error(err))
			}
		}

		products, err := s.fetcher.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetch products: %w", err)
		}

		if s.cache != nil {
			go func() {
				if err := s.cache.Set(context.Background(), products); err != nil {
					s.log.Warn("catalog cache set failed", zap.Error(err))
				}
			}()
		}

		return products, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]domain.Product), nil
}

// Invalidate drops the cached collection, forcing the next read to hit
// the backend.
func (s *Service) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx); err != nil {
		s.log.Warn("catalog cache invalidate failed", zap.Error(err))
	}
}
