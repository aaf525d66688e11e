// ABOUTME: Redis cache implementation using go-redis client
// ABOUTME: Namespaces all keys under a service prefix and floors tiny TTLs

package redis

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"feedcanon/pkg/config"
)

// keyPrefix namespaces our entries so a shared Redis stays navigable.
const keyPrefix = "feedcanon:"

// minTTL keeps feeds that declare near-instant expiries from thrashing
// Redis; anything shorter is rounded up.
const minTTL = time.Minute

// RedisCache implements the Cache interface using Redis
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache instance
func NewRedisCache(cfg config.RedisConfig) (*RedisCache, error) {
	if cfg.Address == "" {
		return nil, errors.New("redis address cannot be empty")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Get retrieves a value from Redis
func (c *RedisCache) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.New("key not found")
		}
		return nil, err
	}

	return val, nil
}

// Set stores a value in Redis with the given TTL. A zero TTL means no
// expiration; positive TTLs below the floor are rounded up.
func (c *RedisCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl > 0 && ttl < minTTL {
		ttl = minTTL
	}
	return c.client.Set(ctx, keyPrefix+key, value, ttl).Err()
}

// Delete removes a key from Redis
func (c *RedisCache) Delete(ctx context.Context, key string) error {
	// Deleting a non-existent key is not an error for our use case
	c.client.Del(ctx, keyPrefix+key)
	return nil
}

// Close closes the Redis connection
func (c *RedisCache) Close() error {
	return c.client.Close()
}
