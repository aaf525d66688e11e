package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	coreerrors "feedcanon/core/errors"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &coreerrors.ValidationError{Field: "url", Message: "empty"}, http.StatusBadRequest},
		{"contract", &coreerrors.ContractError{Contract: "Render", Message: "bad format"}, http.StatusBadRequest},
		{"retrieval", &coreerrors.RetrievalError{URL: "http://x/", Message: "down"}, http.StatusBadGateway},
		{"unknown", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped validation", coreerrors.WrapError(&coreerrors.ValidationError{Field: "f", Message: "m"}, "context"), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForError(tt.err); got != tt.want {
				t.Errorf("statusForError = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWriteError_ProducesJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(rec, http.StatusBadRequest, "bad input")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %s", ct)
	}
	if !strings.Contains(rec.Body.String(), `"bad input"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
