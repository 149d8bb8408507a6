package middleware

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/labstack/echo/v4"
)

// fire sends one request through the limited handler as the given user and
// returns the handler error plus the recorder.
func fire(h echo.HandlerFunc, userID string) (error, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != "" {
		c.Set("user_id", userID)
	}
	return h(c), rec
}

func TestRateLimitAllowsBurstThenThrottles(t *testing.T) {
	h := RateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 3})(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	for i := 0; i < 3; i++ {
		err, rec := fire(h, "")
		if err != nil {
			t.Fatalf("request %d within burst: %v", i+1, err)
		}
		if rec.Header().Get("X-RateLimit-Limit") != "1" {
			t.Errorf("request %d: limit header %q", i+1, rec.Header().Get("X-RateLimit-Limit"))
		}
	}

	err, rec := fire(h, "")
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusTooManyRequests {
		t.Fatalf("exhausted bucket should return 429, got %v", err)
	}
	if rec.Header().Get("X-RateLimit-Remaining") != "0" {
		t.Errorf("remaining header %q", rec.Header().Get("X-RateLimit-Remaining"))
	}
	retry, convErr := strconv.Atoi(rec.Header().Get("Retry-After"))
	if convErr != nil || retry < 1 {
		t.Errorf("Retry-After must be a positive integer, got %q", rec.Header().Get("Retry-After"))
	}
}

func TestRateLimitIsolatesUsers(t *testing.T) {
	h := RateLimit(RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1})(func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	if err, _ := fire(h, "reception-desk-1"); err != nil {
		t.Fatalf("first desk, first request: %v", err)
	}
	if err, _ := fire(h, "reception-desk-1"); err == nil {
		t.Fatal("first desk should be throttled on its second request")
	}
	// A different desk has its own bucket and is unaffected.
	if err, _ := fire(h, "reception-desk-2"); err != nil {
		t.Fatalf("second desk should not share the first desk's bucket: %v", err)
	}
}

func TestRateLimitDefaults(t *testing.T) {
	cfg := DefaultRateLimitConfig()
	if cfg.RequestsPerSecond != 100 || cfg.BurstSize != 200 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestTokenBucketRetryAfterZeroRate(t *testing.T) {
	b := newTokenBucket(0, 1)
	b.allow()
	if got := b.retryAfter(); got != 1 {
		t.Errorf("a drained bucket that never refills should still advise 1s, got %d", got)
	}
}

func TestRateLimiterStoreReusesBuckets(t *testing.T) {
	store := newRateLimiterStore(RateLimitConfig{RequestsPerSecond: 10, BurstSize: 5})
	first := store.getBucket("doctor-3")
	if first == nil {
		t.Fatal("expected a bucket")
	}
	if store.getBucket("doctor-3") != first {
		t.Error("the same key must map to the same bucket")
	}
	if store.getBucket("doctor-4") == first {
		t.Error("distinct keys must not share a bucket")
	}
}
