// ABOUTME: Main entry point for the feedcanon API server
// ABOUTME: Wires together all components and starts the HTTP server

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedcanon/api"
	"feedcanon/api/handlers"
	"feedcanon/core/feed"
	"feedcanon/core/interfaces"
	"feedcanon/core/parser"
	"feedcanon/infrastructure/cache/memory"
	"feedcanon/infrastructure/cache/redis"
	"feedcanon/infrastructure/cache/sqlite"
	stdhttp "feedcanon/infrastructure/http/standard"
	stdlogger "feedcanon/infrastructure/logger/standard"
	"feedcanon/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Parser options come from the environment too; an unrecognized key
	// is a programmer error and stops startup.
	parserOpts, err := parser.OptionsFromMap(cfg.Parser)
	if err != nil {
		log.Fatalf("Invalid parser options: %v", err)
	}

	// Create logger
	logger := stdlogger.NewStandardLogger()
	logger.Info("Starting feedcanon API", map[string]interface{}{
		"port":       cfg.Server.Port,
		"cache_type": cfg.Cache.Type,
		"storage":    cfg.Storage.Enabled,
	})

	// Create cache
	var cache interfaces.Cache
	switch cfg.Cache.Type {
	case "redis":
		redisCache, err := redis.NewRedisCache(cfg.Cache.Redis)
		if err != nil {
			logger.Error("Failed to create Redis cache, falling back to memory", map[string]interface{}{
				"error": err.Error(),
			})
			cache = memory.NewMemoryCache()
		} else {
			cache = redisCache
			logger.Info("Using Redis cache", map[string]interface{}{
				"address": cfg.Cache.Redis.Address,
			})
		}
	default:
		cache = memory.NewMemoryCacheWithExpiration(time.Duration(cfg.Cache.Memory.DefaultExpiration) * time.Second)
		logger.Info("Using memory cache", nil)
	}

	// Create the persistent feed store when enabled
	var store interfaces.FeedStore
	if cfg.Storage.Enabled {
		feedStore, err := sqlite.NewFeedStore(cfg.Storage.Path)
		if err != nil {
			logger.Error("Failed to open feed store, continuing without persistence", map[string]interface{}{
				"path":  cfg.Storage.Path,
				"error": err.Error(),
			})
		} else {
			store = feedStore
			defer feedStore.Close()
			logger.Info("Using SQLite feed store", map[string]interface{}{
				"path": cfg.Storage.Path,
			})
		}
	}

	// Create HTTP client
	httpClient := stdhttp.NewStandardHTTPClient(30 * time.Second)
	httpClient.SetUserAgent(parserOpts.UserAgent)

	// Create dependencies container
	deps := interfaces.Dependencies{
		Cache:      cache,
		Store:      store,
		HTTPClient: httpClient,
		Logger:     logger,
	}

	// Create the feed service
	feedService := feed.NewService(deps, parserOpts)

	// Build the router with middleware and handlers
	router := api.NewRouter(
		api.ServerConfig{
			Logger:     logger,
			RateLimit:  cfg.Server.RateLimit,
			RateWindow: time.Duration(cfg.Server.RateWindowSeconds) * time.Second,
		},
		handlers.NewFeedHandler(feedService),
		handlers.NewValidateHandler(feedService),
		handlers.NewDiscoverHandler(httpClient),
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("HTTP server starting", map[string]interface{}{
			"address": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...", nil)

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", map[string]interface{}{
			"error": err.Error(),
		})
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped", nil)
}
