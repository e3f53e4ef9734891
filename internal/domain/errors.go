package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrTenantNotFound is returned when the catalog backend has no such tenant
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrEmptyCatalog is returned when a tenant has no products to match against
	ErrEmptyCatalog = errors.New("tenant catalog is empty")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrCatalogAPIFailure is returned when a catalog backend request fails
	ErrCatalogAPIFailure = errors.New("catalog API request failed")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
