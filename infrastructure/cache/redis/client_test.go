package redis

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"feedcanon/core/interfaces"
	"feedcanon/pkg/config"
)

func TestNewRedisCache_EmptyAddress(t *testing.T) {
	_, err := NewRedisCache(config.RedisConfig{Address: ""})
	if err == nil {
		t.Error("NewRedisCache should return error for empty address")
	}
}

func TestNewRedisCache_UnreachableServer(t *testing.T) {
	_, err := NewRedisCache(config.RedisConfig{Address: "127.0.0.1:1"})
	if err == nil {
		t.Error("NewRedisCache should return error when ping fails")
	}
}

// liveClient connects to a local Redis if one is running; otherwise the
// integration tests are skipped.
func liveClient(t *testing.T) *RedisCache {
	t.Helper()
	cache, err := NewRedisCache(config.RedisConfig{Address: "localhost:6379"})
	if err != nil {
		t.Skipf("redis not available: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestRedisCache_SetAndGet(t *testing.T) {
	cache := liveClient(t)
	var _ interfaces.Cache = cache
	ctx := context.Background()

	key := "feedcanon-test:setget"
	defer cache.Delete(ctx, key)

	if err := cache.Set(ctx, key, []byte("value"), 1*time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	value, err := cache.Get(ctx, key)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if string(value) != "value" {
		t.Errorf("Get = %s, want value", string(value))
	}
}

func TestRedisCache_GetMissingKey(t *testing.T) {
	cache := liveClient(t)

	_, err := cache.Get(context.Background(), "feedcanon-test:missing")
	if err == nil {
		t.Error("Get should return error for missing key")
	}
}

func TestRedisCache_KeysAreNamespaced(t *testing.T) {
	cache := liveClient(t)
	ctx := context.Background()

	key := "feedcanon-test:prefix"
	defer cache.Delete(ctx, key)
	if err := cache.Set(ctx, key, []byte("v"), 1*time.Minute); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	raw := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})
	defer raw.Close()
	if err := raw.Get(ctx, keyPrefix+key).Err(); err != nil {
		t.Errorf("value not stored under the service prefix: %v", err)
	}
}

func TestRedisCache_TTLFloor(t *testing.T) {
	cache := liveClient(t)
	ctx := context.Background()

	key := "feedcanon-test:ttlfloor"
	defer cache.Delete(ctx, key)
	if err := cache.Set(ctx, key, []byte("v"), 1*time.Second); err != nil {
		t.Fatalf("Set returned error: %v", err)
	}

	raw := goredis.NewClient(&goredis.Options{Addr: "localhost:6379"})
	defer raw.Close()
	ttl, err := raw.TTL(ctx, keyPrefix+key).Result()
	if err != nil {
		t.Fatalf("TTL returned error: %v", err)
	}
	if ttl < 30*time.Second {
		t.Errorf("TTL = %v, want the one-second request rounded up to the floor", ttl)
	}
}

func TestRedisCache_Delete(t *testing.T) {
	cache := liveClient(t)
	ctx := context.Background()

	key := "feedcanon-test:delete"
	cache.Set(ctx, key, []byte("value"), 1*time.Minute)

	if err := cache.Delete(ctx, key); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := cache.Get(ctx, key); err == nil {
		t.Error("Get should fail after Delete")
	}

	if err := cache.Delete(ctx, "feedcanon-test:never-existed"); err != nil {
		t.Errorf("Delete of missing key returned error: %v", err)
	}
}
