// Package core contains the business logic for feedcanon.
// It is framework-agnostic and can be used independently of the HTTP
// layer or any infrastructure concern.
//
// The core package is organized into several sub-packages:
//
// - domain: pure models (Feed, Item, Enclosure) shared across layers
// - parser: the liberal feed parsing engine and serializer
// - feed: the retrieval, caching, and aggregation service
// - errors: custom error types separating document problems from bugs
// - interfaces: contracts for external dependencies (cache, store, HTTP, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies in the service layer
// - All external dependencies are injected via interfaces
// - Malformed documents degrade to absent values, never to errors
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,
//	    HTTPClient: myHTTPClient,
//	    Logger:     myLogger,
//	}
//
//	svc := feed.NewService(deps, parser.DefaultOptions())
//	parsed, err := svc.ParseSingleFeed(ctx, "https://example.com/feed.rss")
package core
