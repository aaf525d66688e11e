// ABOUTME: Retrieval collaborator built on net/http with retry and conditional GET support
// ABOUTME: Returns raw bytes plus headers and the final URL after redirects

package standard

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"feedcanon/core/interfaces"
)

const (
	maxRetries       = 3
	defaultUserAgent = "feedcanon/1.0"

	// maxBodyBytes bounds how much of a response we will buffer. Feeds
	// larger than this are almost certainly not feeds.
	maxBodyBytes = 16 * 1024 * 1024
)

// StandardHTTPClient implements the HTTPClient interface using net/http
type StandardHTTPClient struct {
	client    *http.Client
	userAgent string
}

// NewStandardHTTPClient creates a new HTTP client with the specified timeout
func NewStandardHTTPClient(timeout time.Duration) *StandardHTTPClient {
	return &StandardHTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		userAgent: defaultUserAgent,
	}
}

// SetUserAgent overrides the User-Agent sent on every request
func (c *StandardHTTPClient) SetUserAgent(ua string) {
	if ua != "" {
		c.userAgent = ua
	}
}

// Fetch performs an unconditional GET
func (c *StandardHTTPClient) Fetch(ctx context.Context, url string) (*interfaces.FetchResult, error) {
	return c.FetchConditional(ctx, url, "", "")
}

// FetchConditional performs a GET carrying cache validators when available.
// A 304 response yields an empty-body result with NotModified set.
func (c *StandardHTTPClient) FetchConditional(ctx context.Context, url, etag, lastModified string) (*interfaces.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/rss+xml, application/atom+xml, application/xml, text/xml, */*")
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}
	if lastModified != "" {
		req.Header.Set("If-Modified-Since", lastModified)
	}

	resp, err := c.doWithRetry(ctx, req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	result := &interfaces.FetchResult{
		Headers:     flattenHeaders(resp.Header),
		StatusCode:  resp.StatusCode,
		NotModified: resp.StatusCode == http.StatusNotModified,
	}
	if resp.Request != nil && resp.Request.URL != nil {
		result.FinalURL = resp.Request.URL.String()
	} else {
		result.FinalURL = url
	}

	if result.NotModified {
		return result, nil
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	result.Body = body

	return result, nil
}

// doWithRetry retries transient failures and 5xx responses with backoff.
// 4xx responses and the final attempt's 5xx come back as-is; the caller
// decides what a bad status means.
func (c *StandardHTTPClient) doWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	var resp *http.Response
	var lastErr error

	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 100ms, 200ms
			backoff := time.Duration(100*(1<<(attempt-1))) * time.Millisecond
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		var err error
		resp, err = c.client.Do(req)
		if err != nil {
			lastErr = err
			resp = nil
			continue
		}

		// Don't retry on success, redirects handled by the client, or 4xx
		if resp.StatusCode < 500 {
			return resp, nil
		}

		if attempt == maxRetries-1 {
			return resp, nil
		}
		resp.Body.Close()
		lastErr = fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if resp != nil {
		return resp, nil
	}
	return nil, lastErr
}

// flattenHeaders keeps the first value of each header, which is all the
// parser cares about.
func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for key, values := range h {
		if len(values) > 0 {
			out[key] = values[0]
		}
	}
	return out
}
