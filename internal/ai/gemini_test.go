package ai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// newTestClient returns a client pointed at the given server with a fast retry
// delay and no client-side throttling, so retry behavior can be observed
// without real waits.
func newTestClient(serverURL string, maxRetries int) *Client {
	c := NewClient("test-key", serverURL, maxRetries, 5*time.Millisecond, 2*time.Second)
	c.limiter = rate.NewLimiter(rate.Inf, 1)
	return c
}

func TestGenerateRetriesRateLimitThenSucceeds(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := atomic.AddInt32(&calls, 1)
		if n <= 3 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"generated reply"}]}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)

	text, err := client.GenerateText(context.Background(), "hello")
	if err != nil {
		t.Fatalf("GenerateText returned error: %v", err)
	}
	if text != "generated reply" {
		t.Errorf("got text %q, want %q", text, "generated reply")
	}
	if got := atomic.LoadInt32(&calls); got != 4 {
		t.Errorf("server saw %d requests, want 4 (1 initial + 3 retries)", got)
	}
}

func TestGenerateRateLimitExhaustsRetries(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)

	_, err := client.GenerateText(context.Background(), "hello")
	if err == nil {
		t.Fatal("expected error after exhausting retries")
	}

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected *RemoteError, got %T", err)
	}
	if remoteErr.Kind != ErrRateLimited {
		t.Errorf("got kind %q, want %q", remoteErr.Kind, ErrRateLimited)
	}
	if got := atomic.LoadInt32(&calls); got != 4 {
		t.Errorf("server saw %d requests, want 4", got)
	}
}

func TestGenerateUnauthorizedNotRetried(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)

	_, err := client.GenerateText(context.Background(), "hello")

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected *RemoteError, got %v", err)
	}
	if remoteErr.Kind != ErrUnauthorized {
		t.Errorf("got kind %q, want %q", remoteErr.Kind, ErrUnauthorized)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server saw %d requests, want 1 (401 must not be retried)", got)
	}
}

func TestGenerateEmptyCandidatesIsInvalidShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)

	_, err := client.GenerateText(context.Background(), "hello")

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected *RemoteError, got %v", err)
	}
	if remoteErr.Kind != ErrInvalidResponseShape {
		t.Errorf("got kind %q, want %q", remoteErr.Kind, ErrInvalidResponseShape)
	}
}

func TestGenerateMalformedJSONIsInvalidShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json at all`))
	}))
	defer server.Close()

	client := newTestClient(server.URL, 3)

	_, err := client.GenerateText(context.Background(), "hello")

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("expected *RemoteError, got %v", err)
	}
	if remoteErr.Kind != ErrInvalidResponseShape {
		t.Errorf("got kind %q, want %q", remoteErr.Kind, ErrInvalidResponseShape)
	}
}

func TestExtractResponseText(t *testing.T) {
	if got := ExtractResponseText(nil); got != "" {
		t.Errorf("nil response: got %q, want empty", got)
	}

	resp := &GeminiResponse{
		Candidates: []Candidate{
			{Content: Content{Parts: []Part{{Text: "first"}, {Text: "second"}}}},
		},
	}
	if got := ExtractResponseText(resp); got != "first" {
		t.Errorf("got %q, want %q", got, "first")
	}
}
