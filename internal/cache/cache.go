package cache

import (
	"context"
	"errors"

	"github.com/Festongithub/onesoko-storefront/internal/domain"
)

// CatalogCache holds the most recently fetched product collection so
// repeated listings do not hit the backend every time.
type CatalogCache interface {
	Get(ctx context.Context) ([]domain.Product, error)
	Set(ctx context.Context, products []domain.Product) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
