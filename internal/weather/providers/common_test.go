package providers

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

func get(url string) func() (*http.Request, error) {
	return func() (*http.Request, error) {
		return http.NewRequest(http.MethodGet, url, nil)
	}
}

func TestDoRequestGivesUpAfterMaxRetries(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cb := newCircuitBreaker("test", discard)
	_, err := doRequestWithResilience(context.Background(), testHTTPConfig(srv.Client()), cb, get(srv.URL))

	if !errors.Is(err, errRateLimited) {
		t.Fatalf("expected rate limited error, got %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestDoRequestRejectsMissingClient(t *testing.T) {
	cb := newCircuitBreaker("test", discard)
	_, err := doRequestWithResilience(context.Background(), HTTPClientConfig{Backoff: DefaultBackoff}, cb, get("http://example.invalid"))

	if !errors.Is(err, errNoHTTPClient) {
		t.Fatalf("expected %v, got %v", errNoHTTPClient, err)
	}
}

func TestDoRequestStopsWhenCircuitOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testHTTPConfig(srv.Client())
	cfg.Backoff.MaxRetries = 10
	cb := newCircuitBreaker("test", discard)

	_, err := doRequestWithResilience(context.Background(), cfg, cb, get(srv.URL))

	// The default breaker trips after more than five consecutive failures.
	if !errors.Is(err, errCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if got := calls.Load(); got != 6 {
		t.Fatalf("expected 6 attempts before the breaker opened, got %d", got)
	}
}

func TestDoRequestHonoursLimiterCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	cfg := testHTTPConfig(srv.Client())
	// One token per hour with the only token already spent.
	cfg.Limiter = rate.NewLimiter(rate.Every(time.Hour), 1)
	cfg.Limiter.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := doRequestWithResilience(ctx, cfg, newCircuitBreaker("test", discard), get(srv.URL))
	if err == nil {
		t.Fatal("expected error from limiter wait")
	}
}
