package interfaces

import (
	"context"
	"strings"
)

// HTTPClient defines the retrieval collaborator. The core never performs
// network I/O itself; it consumes raw bytes plus headers from this interface.
type HTTPClient interface {
	// Fetch performs an HTTP GET against the URL and returns the raw body,
	// response headers, and the final URL after redirects.
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// ConditionalFetcher is implemented by clients that support conditional GET.
// Callers type-assert; a client without it is simply fetched unconditionally.
type ConditionalFetcher interface {
	// FetchConditional performs a GET with If-None-Match / If-Modified-Since
	// headers. Either validator may be blank.
	FetchConditional(ctx context.Context, url, etag, lastModified string) (*FetchResult, error)
}

// FetchResult carries everything the parser needs from one retrieval.
type FetchResult struct {
	// Body is the raw response body.
	Body []byte

	// Headers holds the response headers, single-valued.
	Headers map[string]string

	// FinalURL is the URL after following redirects.
	FinalURL string

	// StatusCode is the HTTP status code of the final response.
	StatusCode int

	// NotModified is true when a conditional GET returned 304.
	NotModified bool
}

// ContentType returns the Content-Type header, if any.
func (r *FetchResult) ContentType() string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, "Content-Type") {
			return v
		}
	}
	return ""
}
