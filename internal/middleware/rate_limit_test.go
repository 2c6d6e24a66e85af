package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 5) // 10 per minute, burst of 5
	defer rl.Stop()

	// First 5 requests should be allowed (burst)
	for i := 0; i < 5; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Errorf("Request %d should be allowed", i+1)
		}
	}

	// 6th request should be rate limited (exceeded burst)
	if rl.Allow("10.0.0.1") {
		t.Error("Request 6 should be rate limited")
	}
}

func TestRateLimiter_DifferentClients(t *testing.T) {
	rl := NewRateLimiterWithConfig(10, 3)
	defer rl.Stop()

	// Exhaust the first client's burst
	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Errorf("Client 1 request %d should be allowed", i+1)
		}
	}

	if rl.Allow("10.0.0.1") {
		t.Error("Client 1 should be rate limited")
	}

	// A second client still has its full burst
	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.2") {
			t.Errorf("Client 2 request %d should be allowed", i+1)
		}
	}
}

func TestMiddleware_RejectsWith429(t *testing.T) {
	rl := NewRateLimiterWithConfig(1, 1)
	defer rl.Stop()

	e := echo.New()
	handler := rl.Middleware()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	run := func() int {
		req := httptest.NewRequest(http.MethodPost, "/auth/firebase", nil)
		req.RemoteAddr = "10.0.0.1:51234"
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := handler(c); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		return rec.Code
	}

	if code := run(); code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", code)
	}
	if code := run(); code != http.StatusTooManyRequests {
		t.Fatalf("Expected status 429, got %d", code)
	}
}
