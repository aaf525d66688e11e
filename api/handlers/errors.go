// ABOUTME: Shared error-to-HTTP mapping for API handlers
// ABOUTME: Translates core error taxonomy into status codes and JSON bodies

package handlers

import (
	"encoding/json"
	"net/http"

	coreerrors "feedcanon/core/errors"
)

// errorResponse is the JSON shape of every handler error
type errorResponse struct {
	Error string `json:"error"`
}

// statusForError maps the core error taxonomy onto HTTP status codes.
// Contract and validation violations are the caller's fault; retrieval
// failures blame the upstream feed host.
func statusForError(err error) int {
	switch {
	case coreerrors.IsValidation(err):
		return http.StatusBadRequest
	case coreerrors.IsContract(err):
		return http.StatusBadRequest
	case coreerrors.IsRetrieval(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// writeError emits a JSON error response
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorResponse{Error: message})
}

// writeServiceError maps a service error and emits it
func writeServiceError(w http.ResponseWriter, err error) {
	writeError(w, statusForError(err), err.Error())
}

// writeJSON emits a JSON success response
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
