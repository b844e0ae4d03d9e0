package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/ppiankov/truthscope/internal/cache"
)

func testPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, Base: time.Millisecond, Timeout: time.Second}
}

func TestClient_Extract(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"head":"Delhi weather sees sudden turn","body":"Rain and dust storms"}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Endpoint: srv.URL, Policy: testPolicy()})
	art, err := c.Extract(context.Background(), "https://example.com/article")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if art.Head != "Delhi weather sees sudden turn" {
		t.Errorf("head = %q", art.Head)
	}
}

func TestClient_ExtractCacheHit(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(`{"head":"cached headline"}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{
		Endpoint: srv.URL,
		Policy:   testPolicy(),
		Cache:    cache.NewMemoryCache(time.Minute, time.Minute),
		CacheTTL: time.Minute,
	})

	for i := 0; i < 3; i++ {
		if _, err := c.Extract(context.Background(), "https://example.com/a"); err != nil {
			t.Fatalf("Extract: %v", err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("scraper called %d times, want 1 (cache)", got)
	}
}

func TestClient_ExtractRetriesOn5xx(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"head":"recovered"}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Endpoint: srv.URL, Policy: testPolicy()})
	art, err := c.Extract(context.Background(), "https://example.com/a")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if art.Head != "recovered" {
		t.Errorf("head = %q", art.Head)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("scraper called %d times, want 3", got)
	}
}

func TestClient_ExtractNoRetryOn4xx(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Endpoint: srv.URL, Policy: testPolicy()})
	if _, err := c.Extract(context.Background(), "https://example.com/a"); err == nil {
		t.Fatal("expected error for 4xx response")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("scraper called %d times, want 1 (no retry on client error)", got)
	}
}

func TestClient_ExtractServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":"Request failed: timeout"}`))
	}))
	defer srv.Close()

	c := NewClient(ClientConfig{Endpoint: srv.URL, Policy: testPolicy()})
	if _, err := c.Extract(context.Background(), "https://example.com/a"); err == nil {
		t.Fatal("expected error when scraper reports one")
	}
}

func TestClient_Probe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Any response, even an error status, means the service is alive.
		w.WriteHeader(http.StatusInternalServerError)
	}))

	c := NewClient(ClientConfig{Endpoint: srv.URL, Policy: testPolicy(), ProbeTimeout: time.Second})
	if !c.Probe(context.Background()) {
		t.Error("expected probe success while server is up")
	}

	srv.Close()
	if c.Probe(context.Background()) {
		t.Error("expected probe failure after server shutdown")
	}
}
