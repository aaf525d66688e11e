// ABOUTME: In-memory cache implementation backed by go-cache
// ABOUTME: Provides TTL support and periodic expiry cleanup without external services

package memory

import (
	"context"
	"errors"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// cleanupInterval is how often expired entries are purged in the background.
const cleanupInterval = 10 * time.Minute

// MemoryCache implements the Cache interface using an in-process store
type MemoryCache struct {
	store *gocache.Cache
}

// NewMemoryCache creates a new in-memory cache instance
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		store: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

// NewMemoryCacheWithExpiration creates a cache with a default entry TTL,
// used when Set is called with a zero ttl.
func NewMemoryCacheWithExpiration(defaultTTL time.Duration) *MemoryCache {
	return &MemoryCache{
		store: gocache.New(defaultTTL, cleanupInterval),
	}
}

// Get retrieves a value from the cache
func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	value, found := c.store.Get(key)
	if !found {
		return nil, errors.New("key not found")
	}

	stored := value.([]byte)

	// Return a copy so callers cannot mutate the cached bytes
	result := make([]byte, len(stored))
	copy(result, stored)
	return result, nil
}

// Set stores a value in the cache with the given TTL. A zero ttl uses the
// cache's default expiration (no expiration for NewMemoryCache).
func (c *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	if ttl == 0 {
		c.store.SetDefault(key, stored)
	} else {
		c.store.Set(key, stored, ttl)
	}
	return nil
}

// Delete removes a key from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	c.store.Delete(key)
	return nil
}
