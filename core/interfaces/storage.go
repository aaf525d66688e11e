package interfaces

import (
	"context"
	"time"
)

// FeedRecord is the persistent row contract for one cached feed, keyed by URL.
// The raw document bytes are kept alongside the handful of resolved fields a
// reader needs without re-parsing.
type FeedRecord struct {
	URL           string
	Title         string
	Link          string
	FeedData      []byte
	FeedDataType  string
	HTTPHeaders   map[string]string
	LastRetrieved time.Time
}

// FeedStore defines the persistent cache collaborator for feeds. The core
// tolerates this collaborator being entirely absent (caching disabled), so
// every caller must handle a nil FeedStore.
type FeedStore interface {
	// SaveFeed inserts or replaces the record for its URL.
	SaveFeed(ctx context.Context, record *FeedRecord) error

	// LoadFeed returns the record for a URL, or nil with no error on a miss.
	LoadFeed(ctx context.Context, url string) (*FeedRecord, error)
}
