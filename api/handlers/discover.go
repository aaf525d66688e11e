// ABOUTME: Feed discovery endpoint that finds feed URLs advertised by a web page
// ABOUTME: Scans link/a elements for syndication types and well-known path patterns

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"

	"feedcanon/core/interfaces"
	"feedcanon/pkg/urlnorm"
)

// feedMIMETypes are the link types that advertise a syndication feed
var feedMIMETypes = map[string]string{
	"application/rss+xml":  "rss",
	"application/atom+xml": "atom",
	"application/rdf+xml":  "rss",
	"application/xml":      "unknown",
	"text/xml":             "unknown",
}

// DiscoverHandler finds feeds advertised by an HTML page
type DiscoverHandler struct {
	client interfaces.HTTPClient
}

// NewDiscoverHandler creates a new discover handler
func NewDiscoverHandler(client interfaces.HTTPClient) *DiscoverHandler {
	return &DiscoverHandler{client: client}
}

// RegisterRoutes mounts the discovery endpoint
func (h *DiscoverHandler) RegisterRoutes(r chi.Router) {
	r.Post("/discover", h.Discover)
}

// DiscoverRequest is the body of POST /discover
type DiscoverRequest struct {
	URL string `json:"url"`
}

// DiscoveredFeed is one feed candidate found on the page
type DiscoveredFeed struct {
	URL   string `json:"url"`
	Type  string `json:"type"`
	Title string `json:"title,omitempty"`
}

// DiscoverResponse lists the candidates in document order
type DiscoverResponse struct {
	URL   string           `json:"url"`
	Feeds []DiscoveredFeed `json:"feeds"`
}

// Discover fetches the page and extracts advertised feed URLs
func (h *DiscoverHandler) Discover(w http.ResponseWriter, r *http.Request) {
	var req DiscoverRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url cannot be empty")
		return
	}

	pageURL := urlnorm.NormalizeURL(req.URL)

	result, err := h.client.Fetch(r.Context(), pageURL)
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}
	if result.StatusCode != 200 {
		writeError(w, http.StatusBadGateway, "page returned non-200 status code")
		return
	}

	feeds, err := extractFeedLinks(result.Body, firstOf(result.FinalURL, pageURL))
	if err != nil {
		writeError(w, http.StatusBadGateway, "failed to parse page")
		return
	}

	writeJSON(w, http.StatusOK, DiscoverResponse{URL: pageURL, Feeds: feeds})
}

// extractFeedLinks walks the document for link rel=alternate declarations
// and, failing that, anchors that look like feed paths.
func extractFeedLinks(body []byte, baseURL string) ([]DiscoveredFeed, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	base, _ := url.Parse(baseURL)
	feeds := make([]DiscoveredFeed, 0, 4)
	seen := map[string]bool{}

	add := func(href, feedType, title string) {
		resolved := resolveHref(base, href)
		if resolved == "" || seen[resolved] {
			return
		}
		seen[resolved] = true
		feeds = append(feeds, DiscoveredFeed{URL: resolved, Type: feedType, Title: title})
	}

	doc.Find("link[rel='alternate']").Each(func(_ int, s *goquery.Selection) {
		linkType := strings.ToLower(strings.TrimSpace(s.AttrOr("type", "")))
		feedType, ok := feedMIMETypes[linkType]
		if !ok {
			return
		}
		add(s.AttrOr("href", ""), feedType, s.AttrOr("title", ""))
	})

	// Pages without alternate links often still expose obvious feed paths
	if len(feeds) == 0 {
		doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			href := s.AttrOr("href", "")
			if looksLikeFeedPath(href) {
				add(href, "unknown", strings.TrimSpace(s.Text()))
			}
		})
	}

	return feeds, nil
}

func resolveHref(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	if href == "" {
		return ""
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base != nil {
		ref = base.ResolveReference(ref)
	}
	return urlnorm.NormalizeURL(ref.String())
}

func looksLikeFeedPath(href string) bool {
	lower := strings.ToLower(href)
	for _, pattern := range []string{"/feed", "/rss", "/atom", ".rss", "feed.xml", "rss.xml", "atom.xml", "index.xml"} {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

func firstOf(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
