package cache

import (
	"context"
	"sync"
	"time"

	"github.com/catifypro/matcher/internal/domain"
)

// defaultCleanupInterval is how often expired catalog snapshots are purged.
const defaultCleanupInterval = 10 * time.Minute

// entry is one cached tenant catalog with its expiration
type entry struct {
	products   []domain.Product
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory product cache with TTL support.
// Catalog lists are small enough per tenant that an unbounded map with
// periodic cleanup is fine.
type MemoryCache struct {
	data  map[string]entry
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory cache and starts its cleanup loop.
func NewMemoryCache() *MemoryCache {
	c := &MemoryCache{
		data: make(map[string]entry),
	}

	go c.cleanupExpired(defaultCleanupInterval)

	return c
}

// Get retrieves a cached product list. Expired entries count as misses.
func (c *MemoryCache) Get(ctx context.Context, key string) ([]domain.Product, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	e, exists := c.data[key]
	if !exists || time.Now().After(e.expiration) {
		return nil, domain.ErrCacheMiss
	}

	// Hand out a copy; callers must not be able to mutate the cached list
	products := make([]domain.Product, len(e.products))
	copy(products, e.products)

	return products, nil
}

// Set stores a product list with the given TTL.
func (c *MemoryCache) Set(ctx context.Context, key string, products []domain.Product, ttl time.Duration) error {
	stored := make([]domain.Product, len(products))
	copy(stored, products)

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = entry{
		products:   stored,
		expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes a cached product list.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Size returns the current number of cached catalogs (for monitoring).
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all cached catalogs.
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]entry)
}

// cleanupExpired removes expired entries periodically.
func (c *MemoryCache) cleanupExpired(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, e := range c.data {
			if now.After(e.expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}
