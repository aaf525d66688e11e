// ABOUTME: SQLite-backed persistent feed store
// ABOUTME: Holds raw feed documents and resolved header fields keyed by URL

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"feedcanon/core/interfaces"
)

const feedsTable = "feeds"

// Store implements the FeedStore interface on a local SQLite file
type Store struct {
	db       *sql.DB
	filePath string
}

// NewFeedStore opens (or creates) the store at the given file path
func NewFeedStore(filePath string) (*Store, error) {
	if filePath == "" {
		filePath = "feeds.db"
	}

	db, err := sql.Open("sqlite3", filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database: %w", err)
	}

	store := &Store{
		db:       db,
		filePath: filePath,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// initSchema creates the feeds table if it doesn't exist
func (s *Store) initSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS feeds (
			url TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			link TEXT NOT NULL DEFAULT '',
			feed_data BLOB,
			feed_data_type TEXT NOT NULL DEFAULT '',
			http_headers TEXT NOT NULL DEFAULT '{}',
			last_retrieved INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_feeds_last_retrieved ON feeds(last_retrieved);
	`

	_, err := s.db.Exec(query)
	return err
}

// SaveFeed inserts or replaces the record for its URL
func (s *Store) SaveFeed(ctx context.Context, record *interfaces.FeedRecord) error {
	if record == nil {
		return errors.New("record cannot be nil")
	}
	if record.URL == "" {
		return errors.New("record URL cannot be empty")
	}
	if len(record.URL) > maxURLLength {
		return fmt.Errorf("record URL exceeds %d bytes", maxURLLength)
	}
	if len(record.FeedData) > maxBlobLength {
		return fmt.Errorf("feed data exceeds %d bytes", maxBlobLength)
	}

	headers := record.HTTPHeaders
	if headers == nil {
		headers = map[string]string{}
	}
	headersJSON, err := json.Marshal(headers)
	if err != nil {
		return fmt.Errorf("failed to encode headers: %w", err)
	}

	query, params, err := NewQueryBuilder().
		InsertOrReplace(feedsTable,
			[]string{"url", "title", "link", "feed_data", "feed_data_type", "http_headers", "last_retrieved"},
			[]interface{}{
				record.URL,
				record.Title,
				record.Link,
				record.FeedData,
				record.FeedDataType,
				string(headersJSON),
				record.LastRetrieved.Unix(),
			}).
		Build()
	if err != nil {
		return err
	}

	if _, err := s.db.ExecContext(ctx, query, params...); err != nil {
		return fmt.Errorf("failed to save feed: %w", err)
	}
	return nil
}

// LoadFeed returns the record for a URL, or nil with no error on a miss
func (s *Store) LoadFeed(ctx context.Context, url string) (*interfaces.FeedRecord, error) {
	if url == "" {
		return nil, errors.New("url cannot be empty")
	}

	query, params, err := NewQueryBuilder().
		Select("url", "title", "link", "feed_data", "feed_data_type", "http_headers", "last_retrieved").
		From(feedsTable).
		Where("url", url).
		Build()
	if err != nil {
		return nil, err
	}

	var record interfaces.FeedRecord
	var headersJSON string
	var lastRetrieved int64

	err = s.db.QueryRowContext(ctx, query, params...).Scan(
		&record.URL,
		&record.Title,
		&record.Link,
		&record.FeedData,
		&record.FeedDataType,
		&headersJSON,
		&lastRetrieved,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load feed: %w", err)
	}

	if err := json.Unmarshal([]byte(headersJSON), &record.HTTPHeaders); err != nil {
		// A corrupt header blob should not make the whole row unusable
		record.HTTPHeaders = map[string]string{}
	}
	if lastRetrieved > 0 {
		record.LastRetrieved = time.Unix(lastRetrieved, 0).UTC()
	}

	return &record, nil
}

// DeleteFeed removes the record for a URL; missing rows are not an error
func (s *Store) DeleteFeed(ctx context.Context, url string) error {
	if url == "" {
		return errors.New("url cannot be empty")
	}

	query, params, err := NewQueryBuilder().
		DeleteFrom(feedsTable).
		Where("url", url).
		Build()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, params...)
	return err
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}
