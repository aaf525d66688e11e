package standard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"feedcanon/core/interfaces"
)

func TestNewStandardHTTPClient_ImplementsInterfaces(t *testing.T) {
	client := NewStandardHTTPClient(10 * time.Second)
	var _ interfaces.HTTPClient = client
	var _ interfaces.ConditionalFetcher = client
}

func TestFetch_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		w.Header().Set("Content-Type", "application/rss+xml")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("<rss/>"))
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)
	result, err := client.Fetch(context.Background(), server.URL)

	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", result.StatusCode)
	}
	if string(result.Body) != "<rss/>" {
		t.Errorf("Body = %s", string(result.Body))
	}
	if result.ContentType() != "application/rss+xml" {
		t.Errorf("ContentType = %s", result.ContentType())
	}
	if result.FinalURL != server.URL+"/" && result.FinalURL != server.URL {
		t.Errorf("FinalURL = %s", result.FinalURL)
	}
}

func TestFetch_SetsUserAgentAndAccept(t *testing.T) {
	var capturedUA, capturedAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUA = r.Header.Get("User-Agent")
		capturedAccept = r.Header.Get("Accept")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)
	client.Fetch(context.Background(), server.URL)

	if !strings.Contains(capturedUA, "feedcanon") {
		t.Errorf("User-Agent = %s, should contain feedcanon", capturedUA)
	}
	if !strings.Contains(capturedAccept, "application/rss+xml") {
		t.Errorf("Accept = %s", capturedAccept)
	}
}

func TestSetUserAgent(t *testing.T) {
	var capturedUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedUA = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)
	client.SetUserAgent("custom-reader/2.0")
	client.Fetch(context.Background(), server.URL)

	if capturedUA != "custom-reader/2.0" {
		t.Errorf("User-Agent = %s, want custom-reader/2.0", capturedUA)
	}
}

func TestFetch_FollowsRedirects(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("moved content"))
	}))
	defer final.Close()

	redirector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL, http.StatusMovedPermanently)
	}))
	defer redirector.Close()

	client := NewStandardHTTPClient(10 * time.Second)
	result, err := client.Fetch(context.Background(), redirector.URL)

	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if !strings.HasPrefix(result.FinalURL, final.URL) {
		t.Errorf("FinalURL = %s, want prefix %s", result.FinalURL, final.URL)
	}
	if string(result.Body) != "moved content" {
		t.Errorf("Body = %s", string(result.Body))
	}
}

func TestFetchConditional_NotModified(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("If-None-Match") == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v1"`)
		w.Write([]byte("fresh body"))
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)
	ctx := context.Background()

	first, err := client.FetchConditional(ctx, server.URL, "", "")
	if err != nil {
		t.Fatalf("first fetch error: %v", err)
	}
	if first.NotModified {
		t.Error("first fetch should not be NotModified")
	}

	second, err := client.FetchConditional(ctx, server.URL, `"v1"`, "")
	if err != nil {
		t.Fatalf("conditional fetch error: %v", err)
	}
	if !second.NotModified {
		t.Error("conditional fetch should report NotModified")
	}
	if len(second.Body) != 0 {
		t.Errorf("304 body should be empty, got %d bytes", len(second.Body))
	}
}

func TestFetch_ContextTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := client.Fetch(ctx, server.URL); err == nil {
		t.Error("Fetch should return error for context timeout")
	}
}

func TestFetch_InvalidURL(t *testing.T) {
	client := NewStandardHTTPClient(10 * time.Second)

	if _, err := client.Fetch(context.Background(), "not a valid url"); err == nil {
		t.Error("Fetch should return error for invalid URL")
	}
}

func TestFetch_RetriesOn503(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)
	result, err := client.Fetch(context.Background(), server.URL)

	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3", attempts)
	}
	if result.StatusCode != http.StatusOK {
		t.Errorf("StatusCode = %d, want 200", result.StatusCode)
	}
}

func TestFetch_MaxRetriesReturnsLastStatus(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)
	result, err := client.Fetch(context.Background(), server.URL)

	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if attempts != 3 {
		t.Errorf("attempts = %d, want 3 (max retries)", attempts)
	}
	if result.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("StatusCode = %d, want 503", result.StatusCode)
	}
}

func TestFetch_NoRetryOn4xx(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewStandardHTTPClient(10 * time.Second)
	result, err := client.Fetch(context.Background(), server.URL)

	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1 (no retry on 4xx)", attempts)
	}
	if result.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", result.StatusCode)
	}
}
