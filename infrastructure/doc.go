// Package infrastructure provides concrete implementations of the
// interfaces defined in the core package: caching, persistence, HTTP
// retrieval, and logging.
//
// The infrastructure package is organized by technical concern:
//
// - cache/memory: in-memory cache built on go-cache
// - cache/redis: Redis-backed cache
// - cache/sqlite: persistent feed store on SQLite
// - http/standard: HTTP client with retries and conditional requests
// - logger/standard: structured logger built on logrus
//
// # Cache Implementations
//
// Memory cache:
//
//	cache := memory.NewMemoryCache()
//	err := cache.Set(ctx, "key", []byte("value"), time.Hour)
//	value, err := cache.Get(ctx, "key")
//
// Redis cache:
//
//	cache, err := redis.NewRedisCache(config.RedisConfig{
//	    Address: "localhost:6379",
//	})
//
// # Feed Store
//
// The SQLite store keeps the last retrieved document per feed URL so
// conditional requests and offline fallback have something to serve:
//
//	store, err := sqlite.NewFeedStore("feeds.db")
//	defer store.Close()
//
// # HTTP Client
//
// The HTTP client retries transient server failures and supports
// If-None-Match / If-Modified-Since revalidation:
//
//	client := standard.NewStandardHTTPClient(30 * time.Second)
//	result, err := client.Fetch(ctx, "https://example.com/feed.xml")
package infrastructure
