// Package api provides the HTTP layer for the feedcanon service.
// It assembles a chi router with CORS, request logging, and rate
// limiting middleware, and lets handlers mount their own routes.
//
// # Architecture
//
// The API package is structured as follows:
//
// - server.go: router assembly and middleware wiring
// - handlers/: HTTP request handlers
// - middleware/: HTTP middleware for cross-cutting concerns
//
// # Endpoints
//
// - GET  /health: liveness probe
// - GET  /feed?url=: parse a single feed into its canonical form
// - POST /parse: parse a batch of feeds, optionally paginating items
// - POST /merge: combine several feeds into one, newest items first
// - POST /render: serialize a feed into RSS 1.0, RSS 2.0, or Atom 1.0
// - POST /validate: report whether a URL parses as a recognized feed
// - POST /discover: find feed URLs advertised by a web page
//
// # Usage Example
//
//	router := api.NewRouter(
//	    api.ServerConfig{
//	        Logger:     logger,
//	        RateLimit:  100,
//	        RateWindow: time.Minute,
//	    },
//	    handlers.NewFeedHandler(feedService),
//	)
//	http.ListenAndServe(":8000", router)
//
// # Error Handling
//
// Errors are returned as a small JSON envelope:
//
//	{"error": "url cannot be empty"}
//
// Domain errors map to HTTP status codes: validation and contract
// violations become 400, retrieval failures become 502, and anything
// else becomes 500.
package api
