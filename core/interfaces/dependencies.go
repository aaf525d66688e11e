// ABOUTME: Dependencies container provides dependency injection for core services
// ABOUTME: Defines the contract for dependencies required by the core business logic

package interfaces

// Dependencies holds all external dependencies required by the core business logic
type Dependencies struct {
	// Cache provides byte-blob caching functionality
	Cache Cache

	// Store provides the persistent feed cache; may be nil (caching disabled)
	Store FeedStore

	// HTTPClient provides the retrieval collaborator
	HTTPClient HTTPClient

	// Logger provides structured logging
	Logger Logger
}
