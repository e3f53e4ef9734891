package domain

import (
	"context"
	"time"
)

// ProductCache defines the interface for caching tenant product lists
type ProductCache interface {
	Get(ctx context.Context, key string) ([]Product, error)
	Set(ctx context.Context, key string, products []Product, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// CatalogClient defines the interface for reading product catalogs from the
// CatifyPro backend
type CatalogClient interface {
	ListProducts(ctx context.Context, tenantID string) ([]Product, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
}
