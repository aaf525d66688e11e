// ABOUTME: Feed service wiring retrieval, caching, and the liberal parser together
// ABOUTME: Provides feed operations for the HTTP layer independent of transport details

package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"mime"
	"net/url"
	"sort"
	"sync"
	"time"

	"feedcanon/core/domain"
	coreerrors "feedcanon/core/errors"
	"feedcanon/core/interfaces"
	"feedcanon/core/parser"
)

// maxConcurrentFetches bounds the fan-out when parsing many feeds at once.
const maxConcurrentFetches = 10

// Service handles feed parsing and management
type Service struct {
	deps interfaces.Dependencies
	opts parser.Options
}

// NewService creates a new feed service instance
func NewService(deps interfaces.Dependencies, opts parser.Options) *Service {
	return &Service{
		deps: deps,
		opts: opts,
	}
}

// ParseSingleFeed fetches and parses one feed, serving from cache when fresh
func (s *Service) ParseSingleFeed(ctx context.Context, feedURL string) (*domain.Feed, error) {
	if err := validateFeedURL(feedURL); err != nil {
		return nil, err
	}

	if cached := s.getCachedFeed(ctx, feedURL); cached != nil {
		return cached, nil
	}

	pf, err := s.fetchParsed(ctx, feedURL)
	if err != nil {
		return nil, err
	}

	feed := pf.Canonical()

	// Cache errors are logged, never surfaced
	s.cacheFeed(ctx, feedURL, feed)

	return feed, nil
}

// RenderFeed fetches a feed and re-serializes it into the requested format.
// Unsupported formats are contract violations from the serializer.
func (s *Service) RenderFeed(ctx context.Context, feedURL, format string) (string, error) {
	if err := validateFeedURL(feedURL); err != nil {
		return "", err
	}

	pf, err := s.fetchParsed(ctx, feedURL)
	if err != nil {
		return "", err
	}

	return pf.Render(format)
}

// fetchParsed retrieves the raw document (conditionally when the store has
// validators) and wraps it in a parser feed.
func (s *Service) fetchParsed(ctx context.Context, feedURL string) (*parser.Feed, error) {
	record := s.loadRecord(ctx, feedURL)

	if s.deps.HTTPClient == nil {
		if record != nil && len(record.FeedData) > 0 {
			return s.parsedFromRecord(record), nil
		}
		return nil, &coreerrors.ContractError{
			Contract: "Service.fetchParsed",
			Message:  "HTTP client not configured",
		}
	}

	result, err := s.fetch(ctx, feedURL, record)
	if err != nil {
		// A stored copy beats a hard failure
		if record != nil && len(record.FeedData) > 0 {
			s.logWarn("fetch failed, serving stored copy", map[string]interface{}{
				"url":   feedURL,
				"error": err.Error(),
			})
			return s.parsedFromRecord(record), nil
		}
		return nil, err
	}

	now := time.Now()

	if result.NotModified && record != nil {
		record.LastRetrieved = now
		s.saveRecord(ctx, record)
		return s.parsedFromRecord(record), nil
	}

	if result.StatusCode != 200 {
		return nil, &coreerrors.RetrievalError{
			URL:        feedURL,
			StatusCode: result.StatusCode,
			Message:    "feed returned non-200 status code",
		}
	}
	if len(result.Body) == 0 {
		return nil, &coreerrors.RetrievalError{
			URL:     feedURL,
			Message: "empty feed content",
		}
	}

	pf := parser.NewFeed(s.opts)
	pf.SetRawData(result.Body, charsetFromContentType(result.ContentType()))
	pf.SetURL(firstNonBlank(result.FinalURL, feedURL))
	pf.SetLastRetrieved(now)
	pf.SetHTTPHeaders(result.Headers)

	s.saveRecord(ctx, &interfaces.FeedRecord{
		URL:           feedURL,
		Title:         pf.Title(),
		Link:          pf.Link(),
		FeedData:      result.Body,
		FeedDataType:  pf.Type(),
		HTTPHeaders:   result.Headers,
		LastRetrieved: now,
	})

	return pf, nil
}

// fetch runs a conditional GET when the client supports it and the stored
// record carries validators.
func (s *Service) fetch(ctx context.Context, feedURL string, record *interfaces.FeedRecord) (*interfaces.FetchResult, error) {
	if record != nil && len(record.FeedData) > 0 {
		if cf, ok := s.deps.HTTPClient.(interfaces.ConditionalFetcher); ok {
			etag := record.HTTPHeaders["Etag"]
			if etag == "" {
				etag = record.HTTPHeaders["ETag"]
			}
			lastModified := record.HTTPHeaders["Last-Modified"]
			if etag != "" || lastModified != "" {
				return cf.FetchConditional(ctx, feedURL, etag, lastModified)
			}
		}
	}
	return s.deps.HTTPClient.Fetch(ctx, feedURL)
}

// parsedFromRecord rebuilds a parser feed from a stored raw document
func (s *Service) parsedFromRecord(record *interfaces.FeedRecord) *parser.Feed {
	pf := parser.NewFeed(s.opts)
	pf.SetRawData(record.FeedData, "")
	pf.SetURL(record.URL)
	pf.SetLastRetrieved(record.LastRetrieved)
	pf.SetHTTPHeaders(record.HTTPHeaders)
	return pf
}

// ParseFeeds parses multiple feeds concurrently. Individual failures are
// logged and skipped; only context cancellation aborts the batch.
func (s *Service) ParseFeeds(ctx context.Context, urls []string) ([]*domain.Feed, error) {
	if urls == nil {
		return nil, &coreerrors.ValidationError{Field: "urls", Message: "urls cannot be nil"}
	}
	if len(urls) == 0 {
		return []*domain.Feed{}, nil
	}

	type feedResult struct {
		feed *domain.Feed
		err  error
		url  string
	}

	resultsChan := make(chan feedResult, len(urls))
	semaphore := make(chan struct{}, maxConcurrentFetches)
	var wg sync.WaitGroup

	for _, u := range urls {
		wg.Add(1)
		go func(feedURL string) {
			defer wg.Done()

			select {
			case <-ctx.Done():
				resultsChan <- feedResult{url: feedURL, err: ctx.Err()}
				return
			default:
			}

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			feed, err := s.ParseSingleFeed(ctx, feedURL)
			resultsChan <- feedResult{feed: feed, err: err, url: feedURL}
		}(u)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	feeds := make([]*domain.Feed, 0, len(urls))
	var ctxErr error

	for result := range resultsChan {
		if result.err != nil {
			s.logError("failed to parse feed", map[string]interface{}{
				"url":   result.url,
				"error": result.err.Error(),
			})
			if ctxErr == nil && ctx.Err() != nil {
				ctxErr = ctx.Err()
			}
			continue
		}
		if result.feed != nil {
			feeds = append(feeds, result.feed)
		}
	}

	if ctxErr != nil {
		return feeds, ctxErr
	}
	return feeds, nil
}

// MergeFeeds fetches several feeds concurrently and folds their entries into
// one canonical feed sorted newest first.
func (s *Service) MergeFeeds(ctx context.Context, urls []string, title string) (*domain.Feed, error) {
	feeds, err := s.ParseFeeds(ctx, urls)
	if err != nil {
		return nil, err
	}

	merged := &domain.Feed{
		Title:   title,
		Type:    parser.TypeAtom,
		Version: 1.0,
	}

	total := 0
	for _, f := range feeds {
		total += len(f.Items)
	}
	merged.Items = make([]domain.Item, 0, total)

	minTTL := time.Duration(0)
	for _, f := range feeds {
		merged.Items = append(merged.Items, f.Items...)
		if f.TTL > 0 && (minTTL == 0 || f.TTL < minTTL) {
			minTTL = f.TTL
		}
	}
	if minTTL == 0 {
		minTTL = time.Hour
	}
	merged.TTL = minTTL

	sort.SliceStable(merged.Items, func(i, j int) bool {
		return itemSortTime(&merged.Items[i]).After(itemSortTime(&merged.Items[j]))
	})

	now := time.Now()
	merged.LastRetrieved = &now

	return merged, nil
}

// itemSortTime mirrors the entry ordering rule: undated items sort at epoch
func itemSortTime(it *domain.Item) time.Time {
	if it.Time != nil {
		return *it.Time
	}
	return time.Unix(0, 0)
}

func validateFeedURL(feedURL string) error {
	if feedURL == "" {
		return &coreerrors.ValidationError{Field: "url", Message: "feed URL cannot be empty"}
	}
	parsed, err := url.Parse(feedURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return &coreerrors.ValidationError{Field: "url", Message: "invalid URL format"}
	}
	return nil
}

// getCachedFeed retrieves a canonical feed from cache, nil on any miss
func (s *Service) getCachedFeed(ctx context.Context, feedURL string) *domain.Feed {
	if s.deps.Cache == nil {
		return nil
	}

	data, err := s.deps.Cache.Get(ctx, cacheKey(feedURL))
	if err != nil || len(data) == 0 {
		return nil
	}

	var feed domain.Feed
	if err := json.Unmarshal(data, &feed); err != nil {
		s.logWarn("discarding unreadable cached feed", map[string]interface{}{
			"url":   feedURL,
			"error": err.Error(),
		})
		return nil
	}
	return &feed
}

// cacheFeed stores a canonical feed using its own TTL as the cache TTL
func (s *Service) cacheFeed(ctx context.Context, feedURL string, feed *domain.Feed) {
	if s.deps.Cache == nil {
		return
	}

	data, err := json.Marshal(feed)
	if err != nil {
		return
	}

	ttl := feed.TTL
	if ttl <= 0 {
		ttl = time.Hour
	}

	if err := s.deps.Cache.Set(ctx, cacheKey(feedURL), data, ttl); err != nil {
		s.logWarn("failed to cache feed", map[string]interface{}{
			"url":   feedURL,
			"error": err.Error(),
		})
	}
}

func (s *Service) loadRecord(ctx context.Context, feedURL string) *interfaces.FeedRecord {
	if s.deps.Store == nil {
		return nil
	}
	record, err := s.deps.Store.LoadFeed(ctx, feedURL)
	if err != nil {
		s.logWarn("feed store load failed", map[string]interface{}{
			"url":   feedURL,
			"error": err.Error(),
		})
		return nil
	}
	return record
}

func (s *Service) saveRecord(ctx context.Context, record *interfaces.FeedRecord) {
	if s.deps.Store == nil {
		return
	}
	if err := s.deps.Store.SaveFeed(ctx, record); err != nil {
		s.logWarn("feed store save failed", map[string]interface{}{
			"url":   record.URL,
			"error": err.Error(),
		})
	}
}

func (s *Service) logWarn(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Warn(msg, fields)
	}
}

func (s *Service) logError(msg string, fields map[string]interface{}) {
	if s.deps.Logger != nil {
		s.deps.Logger.Error(msg, fields)
	}
}

func cacheKey(feedURL string) string {
	return fmt.Sprintf("feed:%s", feedURL)
}

// charsetFromContentType pulls the charset parameter out of a Content-Type
// header, blank when absent or unparseable.
func charsetFromContentType(contentType string) string {
	if contentType == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return params["charset"]
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
