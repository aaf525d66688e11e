// ABOUTME: Feed validation endpoint reporting whether a URL parses as a feed
// ABOUTME: Liberal by design: "valid" means the engine recognized a feed family

package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ValidateHandler handles feed validation requests
type ValidateHandler struct {
	svc FeedService
}

// NewValidateHandler creates a new validate handler
func NewValidateHandler(svc FeedService) *ValidateHandler {
	return &ValidateHandler{svc: svc}
}

// RegisterRoutes mounts the validation endpoint
func (h *ValidateHandler) RegisterRoutes(r chi.Router) {
	r.Post("/validate", h.Validate)
}

// ValidateRequest is the body of POST /validate
type ValidateRequest struct {
	URL string `json:"url"`
}

// ValidateResponse reports the validation outcome
type ValidateResponse struct {
	URL      string  `json:"url"`
	Valid    bool    `json:"valid"`
	FeedType string  `json:"feed_type,omitempty"`
	Version  float64 `json:"version,omitempty"`
	Title    string  `json:"title,omitempty"`
	Error    string  `json:"error,omitempty"`
}

// Validate fetches and parses the URL, reporting what the engine made of it
func (h *ValidateHandler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "url cannot be empty")
		return
	}

	resp := ValidateResponse{URL: req.URL}

	parsed, err := h.svc.ParseSingleFeed(r.Context(), req.URL)
	if err != nil {
		resp.Error = err.Error()
		writeJSON(w, http.StatusOK, resp)
		return
	}

	// An unrecognized root element leaves the type blank; that document
	// is not a feed even though parsing "succeeded".
	resp.Valid = parsed.Type != ""
	resp.FeedType = parsed.Type
	resp.Version = parsed.Version
	resp.Title = parsed.Title

	writeJSON(w, http.StatusOK, resp)
}
