// ABOUTME: HTTP router assembly with CORS, request logging, and rate limiting
// ABOUTME: Handlers mount their own routes against the returned chi router

package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"feedcanon/api/middleware"
	"feedcanon/core/interfaces"
)

// RouteRegistrar is implemented by handlers that mount their own routes
type RouteRegistrar interface {
	RegisterRoutes(r chi.Router)
}

// ServerConfig holds configuration for the router
type ServerConfig struct {
	Logger     interfaces.Logger
	RateLimit  int           // requests per window
	RateWindow time.Duration // rate limit window
}

// NewRouter creates the application router with middleware applied
func NewRouter(cfg ServerConfig, handlers ...RouteRegistrar) chi.Router {
	router := chi.NewRouter()

	// CORS first so preflight requests are answered before rate limiting
	router.Use(cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}).Handler)

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	if cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	for _, h := range handlers {
		h.RegisterRoutes(router)
	}

	return router
}
