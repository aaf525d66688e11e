// ABOUTME: HTTP handlers for feed parsing, merging, and re-serialization
// ABOUTME: Thin JSON layer over the feed service; all heuristics live in the core

package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"feedcanon/core/domain"
	"feedcanon/core/feed"
)

// FeedService is the slice of the feed service the handlers consume
type FeedService interface {
	ParseSingleFeed(ctx context.Context, url string) (*domain.Feed, error)
	ParseFeeds(ctx context.Context, urls []string) ([]*domain.Feed, error)
	MergeFeeds(ctx context.Context, urls []string, title string) (*domain.Feed, error)
	RenderFeed(ctx context.Context, url, format string) (string, error)
}

// maxBatchURLs bounds how many feeds one request may ask for
const maxBatchURLs = 100

// FeedHandler handles feed endpoints
type FeedHandler struct {
	svc FeedService
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(svc FeedService) *FeedHandler {
	return &FeedHandler{svc: svc}
}

// RegisterRoutes mounts the feed endpoints on the router
func (h *FeedHandler) RegisterRoutes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/feed", h.GetFeed)
	r.Post("/parse", h.ParseFeeds)
	r.Post("/merge", h.MergeFeeds)
	r.Post("/render", h.RenderFeed)
}

// Health reports service liveness
func (h *FeedHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetFeed parses a single feed given as the url query parameter
func (h *FeedHandler) GetFeed(w http.ResponseWriter, r *http.Request) {
	feedURL := r.URL.Query().Get("url")
	if feedURL == "" {
		writeError(w, http.StatusBadRequest, "missing url query parameter")
		return
	}

	parsed, err := h.svc.ParseSingleFeed(r.Context(), feedURL)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, parsed)
}

// ParseFeedsRequest is the body of POST /parse and POST /merge
type ParseFeedsRequest struct {
	URLs         []string `json:"urls"`
	Title        string   `json:"title,omitempty"`
	Page         int      `json:"page,omitempty"`
	ItemsPerPage int      `json:"items_per_page,omitempty"`
}

// ParseFeedsResponse wraps the batch result
type ParseFeedsResponse struct {
	Feeds []*domain.Feed `json:"feeds"`
	Count int            `json:"count"`
}

func decodeBatchRequest(w http.ResponseWriter, r *http.Request) (*ParseFeedsRequest, bool) {
	var req ParseFeedsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return nil, false
	}
	if len(req.URLs) == 0 {
		writeError(w, http.StatusBadRequest, "urls cannot be empty")
		return nil, false
	}
	if len(req.URLs) > maxBatchURLs {
		writeError(w, http.StatusBadRequest, "too many urls (max "+strconv.Itoa(maxBatchURLs)+")")
		return nil, false
	}
	return &req, true
}

// ParseFeeds parses a batch of feeds concurrently
func (h *FeedHandler) ParseFeeds(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBatchRequest(w, r)
	if !ok {
		return
	}

	feeds, err := h.svc.ParseFeeds(r.Context(), req.URLs)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if req.Page > 0 || req.ItemsPerPage > 0 {
		for _, f := range feeds {
			f.Items = feed.PaginateItems(f.Items, req.Page, req.ItemsPerPage)
		}
	}

	writeJSON(w, http.StatusOK, ParseFeedsResponse{Feeds: feeds, Count: len(feeds)})
}

// MergeFeeds folds several feeds into one, newest entries first
func (h *FeedHandler) MergeFeeds(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeBatchRequest(w, r)
	if !ok {
		return
	}

	title := req.Title
	if title == "" {
		title = "Merged feed"
	}

	merged, err := h.svc.MergeFeeds(r.Context(), req.URLs, title)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	if req.Page > 0 || req.ItemsPerPage > 0 {
		merged.Items = feed.PaginateItems(merged.Items, req.Page, req.ItemsPerPage)
	}

	writeJSON(w, http.StatusOK, merged)
}

// RenderFeedRequest is the body of POST /render
type RenderFeedRequest struct {
	URL    string `json:"url"`
	Format string `json:"format"`
}

// contentTypeForFormat picks the response media type for rendered output
func contentTypeForFormat(format string) string {
	switch format {
	case "atom", "atom1", "atom1.0", "atom_1.0":
		return "application/atom+xml; charset=utf-8"
	default:
		return "application/rss+xml; charset=utf-8"
	}
}

// RenderFeed re-serializes a feed into the requested output format
func (h *FeedHandler) RenderFeed(w http.ResponseWriter, r *http.Request) {
	var req RenderFeedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url cannot be empty")
		return
	}
	if req.Format == "" {
		req.Format = "atom"
	}

	rendered, err := h.svc.RenderFeed(r.Context(), req.URL, req.Format)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypeForFormat(req.Format))
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(rendered))
}
