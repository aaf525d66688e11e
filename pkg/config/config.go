// ABOUTME: Configuration management for the application with environment variable support
// ABOUTME: Defines configuration structures for server, cache, storage, and parser settings

package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
)

// Config holds all application configuration
type Config struct {
	// Server contains HTTP server configuration
	Server ServerConfig

	// Cache contains cache configuration
	Cache CacheConfig

	// Storage contains the persistent feed store configuration
	Storage StorageConfig

	// Parser holds the raw parser option map. Keys are validated by the
	// parser itself, so an unrecognized key fails loudly at startup.
	Parser map[string]interface{}
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	// Port is the HTTP server port
	Port string

	// RateLimit is the number of requests allowed per window per client
	RateLimit int

	// RateWindowSeconds is the rate limit window length in seconds
	RateWindowSeconds int
}

// CacheConfig holds cache backend configuration
type CacheConfig struct {
	// Type specifies the cache backend (redis/memory)
	Type string

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// Memory contains in-memory cache configuration
	Memory MemoryConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// MemoryConfig holds in-memory cache configuration
type MemoryConfig struct {
	// DefaultExpiration is the default TTL for cache entries in seconds
	DefaultExpiration int
}

// StorageConfig holds the persistent feed store configuration
type StorageConfig struct {
	// Enabled toggles the persistent store; the core tolerates it being off
	Enabled bool

	// Path is the SQLite database file path
	Path string
}

// parserOptionKeys are the option keys forwarded to the parser when the
// matching FEEDCANON_<KEY> environment variable is set.
var parserOptionKeys = []string{
	"tidy_enabled",
	"sanitize_with_nofollow",
	"timestamp_estimation_enabled",
	"url_normalization_enabled",
	"strip_comment_count",
	"expand_tabs",
	"max_ttl",
	"output_encoding",
	"generator_name",
	"generator_href",
	"user_agent",
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:              getEnvOrDefault("PORT", "8000"),
			RateLimit:         getEnvAsIntOrDefault("RATE_LIMIT", 100),
			RateWindowSeconds: getEnvAsIntOrDefault("RATE_WINDOW_SECONDS", 60),
		},
		Cache: CacheConfig{
			Type: getEnvOrDefault("CACHE_TYPE", "memory"),
			Redis: RedisConfig{
				Address:  getEnvOrDefault("REDIS_ADDRESS", "localhost:6379"),
				Password: getEnvOrDefault("REDIS_PASSWORD", ""),
				DB:       getEnvAsIntOrDefault("REDIS_DB", 0),
			},
			Memory: MemoryConfig{
				DefaultExpiration: getEnvAsIntOrDefault("MEMORY_CACHE_EXPIRATION", 3600),
			},
		},
		Storage: StorageConfig{
			Enabled: getEnvOrDefault("STORAGE_ENABLED", "true") == "true",
			Path:    getEnvOrDefault("STORAGE_PATH", "feeds.db"),
		},
		Parser: loadParserOptions(),
	}

	return cfg, nil
}

// loadParserOptions collects parser options from the environment. Only keys
// that are actually set end up in the map, so parser defaults stay in charge.
func loadParserOptions() map[string]interface{} {
	opts := map[string]interface{}{}
	for _, key := range parserOptionKeys {
		envName := "FEEDCANON_" + strings.ToUpper(key)
		if value := os.Getenv(envName); value != "" {
			opts[key] = value
		}
	}
	return opts
}

// getEnvOrDefault returns the environment variable value or a default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the environment variable as int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("port cannot be empty")
	}

	if c.Server.RateLimit < 1 {
		return errors.New("rate limit must be at least 1")
	}

	if c.Cache.Type != "redis" && c.Cache.Type != "memory" {
		return errors.New("cache type must be 'redis' or 'memory'")
	}

	if c.Cache.Type == "redis" && c.Cache.Redis.Address == "" {
		return errors.New("redis address cannot be empty when using redis cache")
	}

	if c.Storage.Enabled && c.Storage.Path == "" {
		return errors.New("storage path cannot be empty when storage is enabled")
	}

	return nil
}
