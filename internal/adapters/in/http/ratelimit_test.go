package http

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestMemoryLimiter_Allow(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter()
	limiter.now = func() time.Time { return now }

	assert.True(t, limiter.Allow(t.Context(), "a", 2, time.Minute))
	assert.True(t, limiter.Allow(t.Context(), "a", 2, time.Minute))
	assert.False(t, limiter.Allow(t.Context(), "a", 2, time.Minute))
	assert.True(t, limiter.Allow(t.Context(), "b", 2, time.Minute), "keys are independent")

	now = now.Add(time.Minute + time.Second)
	assert.True(t, limiter.Allow(t.Context(), "a", 2, time.Minute), "window expired")
}

func TestMemoryLimiter_PrunesExpiredBuckets(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter := NewMemoryLimiter()
	limiter.now = func() time.Time { return now }

	for i := range 100 {
		limiter.Allow(t.Context(), "rl:"+strconv.Itoa(i), 1, time.Minute)
	}
	assert.Len(t, limiter.buckets, 100)

	now = now.Add(30 * time.Second)
	limiter.Allow(t.Context(), "rl:fresh", 1, time.Minute)
	assert.Len(t, limiter.buckets, 101, "live buckets are kept")

	now = now.Add(time.Minute)
	limiter.Allow(t.Context(), "rl:late", 1, time.Minute)
	assert.Len(t, limiter.buckets, 2)
	assert.Contains(t, limiter.buckets, "rl:fresh")
	assert.Contains(t, limiter.buckets, "rl:late")
}

func TestRateLimit_Middleware(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(NewMemoryLimiter(), 1, time.Minute))
	ok := func(c echo.Context) error { return c.NoContent(http.StatusNoContent) }
	e.POST("/offers/x/accept", ok)
	e.GET("/jobs", ok)

	send := func(method, path, user string) int {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("X-User-ID", user)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusNoContent, send(http.MethodPost, "/offers/x/accept", "u1"))
	assert.Equal(t, http.StatusTooManyRequests, send(http.MethodPost, "/offers/x/accept", "u1"))
	assert.Equal(t, http.StatusNoContent, send(http.MethodPost, "/offers/x/accept", "u2"))
	assert.Equal(t, http.StatusNoContent, send(http.MethodGet, "/jobs", "u1"), "reads are not limited")
}

func TestRateLimit_Disabled(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(nil, 1, time.Minute))
	e.POST("/jobs", func(c echo.Context) error { return c.NoContent(http.StatusCreated) })

	for range 3 {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/jobs", nil))
		assert.Equal(t, http.StatusCreated, rec.Code)
	}
}

func TestStatusFor(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, statusFor(assert.AnError))
}
