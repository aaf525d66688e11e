package feed

import (
	"context"
	"errors"
	"sync"
	"time"

	"feedcanon/core/interfaces"
)

// mockCache is a map-backed Cache for tests
type mockCache struct {
	mu    sync.Mutex
	data  map[string][]byte
	ttls  map[string]time.Duration
	fail  bool
	gets  int
	sets  int
}

func newMockCache() *mockCache {
	return &mockCache{
		data: map[string][]byte{},
		ttls: map[string]time.Duration{},
	}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gets++
	if m.fail {
		return nil, errors.New("cache unavailable")
	}
	value, ok := m.data[key]
	if !ok {
		return nil, errors.New("key not found")
	}
	return value, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sets++
	if m.fail {
		return errors.New("cache unavailable")
	}
	m.data[key] = value
	m.ttls[key] = ttl
	return nil
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// mockHTTPClient serves canned responses per URL
type mockHTTPClient struct {
	mu        sync.Mutex
	responses map[string]*interfaces.FetchResult
	errs      map[string]error
	calls     []string
}

func newMockHTTPClient() *mockHTTPClient {
	return &mockHTTPClient{
		responses: map[string]*interfaces.FetchResult{},
		errs:      map[string]error{},
	}
}

func (m *mockHTTPClient) respond(url string, status int, body string, headers map[string]string) {
	if headers == nil {
		headers = map[string]string{}
	}
	m.responses[url] = &interfaces.FetchResult{
		Body:       []byte(body),
		Headers:    headers,
		FinalURL:   url,
		StatusCode: status,
	}
}

func (m *mockHTTPClient) Fetch(ctx context.Context, url string) (*interfaces.FetchResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	m.mu.Unlock()
	if err, ok := m.errs[url]; ok {
		return nil, err
	}
	if resp, ok := m.responses[url]; ok {
		return resp, nil
	}
	return nil, errors.New("no canned response for " + url)
}

func (m *mockHTTPClient) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// mockConditionalClient also records conditional fetches
type mockConditionalClient struct {
	mockHTTPClient
	conditional  map[string]*interfaces.FetchResult
	lastETag     string
	lastModified string
}

func newMockConditionalClient() *mockConditionalClient {
	return &mockConditionalClient{
		mockHTTPClient: *newMockHTTPClient(),
		conditional:    map[string]*interfaces.FetchResult{},
	}
}

func (m *mockConditionalClient) FetchConditional(ctx context.Context, url, etag, lastModified string) (*interfaces.FetchResult, error) {
	m.lastETag = etag
	m.lastModified = lastModified
	if resp, ok := m.conditional[url]; ok {
		return resp, nil
	}
	return m.Fetch(ctx, url)
}

// mockStore is a map-backed FeedStore
type mockStore struct {
	mu      sync.Mutex
	records map[string]*interfaces.FeedRecord
	saves   int
}

func newMockStore() *mockStore {
	return &mockStore{records: map[string]*interfaces.FeedRecord{}}
}

func (m *mockStore) SaveFeed(ctx context.Context, record *interfaces.FeedRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saves++
	copied := *record
	m.records[record.URL] = &copied
	return nil
}

func (m *mockStore) LoadFeed(ctx context.Context, url string) (*interfaces.FeedRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	record, ok := m.records[url]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

// mockLogger records log entries
type mockLogger struct {
	mu      sync.Mutex
	entries []logEntry
}

type logEntry struct {
	level  string
	msg    string
	fields map[string]interface{}
}

func (m *mockLogger) log(level, msg string, fields map[string]interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, logEntry{level, msg, fields})
}

func (m *mockLogger) Debug(msg string, fields map[string]interface{}) { m.log("debug", msg, fields) }
func (m *mockLogger) Info(msg string, fields map[string]interface{})  { m.log("info", msg, fields) }
func (m *mockLogger) Warn(msg string, fields map[string]interface{})  { m.log("warn", msg, fields) }
func (m *mockLogger) Error(msg string, fields map[string]interface{}) { m.log("error", msg, fields) }

func (m *mockLogger) countLevel(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, e := range m.entries {
		if e.level == level {
			n++
		}
	}
	return n
}
