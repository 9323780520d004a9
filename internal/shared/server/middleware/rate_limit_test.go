package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimitSlidingWindow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	now := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(func() time.Time { return now })

	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		DefaultGroup: "API",
		Limiter:      limiter,
		Rules: map[string]RateLimitRule{
			"API": {Window: time.Minute, Max: 3},
		},
	}))
	r.POST("/api/chat", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/chat", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		return resp
	}

	for i := 0; i < 3; i++ {
		if resp := send(); resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, resp.Code)
		}
	}

	resp := send()
	if resp.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 over the limit, got %d", resp.Code)
	}
	if resp.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}

	// Once the window slides past the first hits, requests flow again.
	now = now.Add(61 * time.Second)
	if resp := send(); resp.Code != http.StatusOK {
		t.Fatalf("expected 200 after window elapsed, got %d", resp.Code)
	}
}

func TestRateLimitUnknownGroupPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	limiter := NewRateLimiter(nil)

	r := gin.New()
	r.Use(RateLimit(RateLimitConfig{
		DefaultGroup: "API",
		GroupFor: func(c *gin.Context) string {
			if c.Request.Method == http.MethodGet {
				return "STATIC"
			}
			return "API"
		},
		Limiter: limiter,
		Rules: map[string]RateLimitRule{
			"API": {Window: time.Minute, Max: 1},
		},
	}))
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("request %d: expected unthrottled 200, got %d", i+1, resp.Code)
		}
	}
}

func TestAllowZeroRuleAlwaysPasses(t *testing.T) {
	limiter := NewRateLimiter(nil)
	allowed, _ := limiter.Allow("k", RateLimitRule{})
	if !allowed {
		t.Fatal("zero rule must not throttle")
	}
}
