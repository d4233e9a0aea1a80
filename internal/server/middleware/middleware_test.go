package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vesran/guildboard/internal/server/middleware"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func requestFrom(ip string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
	req.RemoteAddr = ip
	return req
}

func TestRateLimitByIP_FirstRequest_Passes(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	handler := middleware.RateLimitByIP(ctx, 1, 1)(okHandler)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, requestFrom("10.0.0.1:1234"))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitByIP_BurstExceeded_Returns429(t *testing.T) {
	t.Parallel()

	// Very low rate (effectively zero refill during the test) with burst of 2.
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	handler := middleware.RateLimitByIP(ctx, 0.001, 2)(okHandler)

	// First two requests consume the burst.
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestFrom("10.0.0.2:1234"))
		require.Equalf(t, http.StatusOK, rec.Code, "request %d should pass", i+1)
	}

	// Third request exceeds burst.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestFrom("10.0.0.2:1234"))

	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "rate limit exceeded")
}

func TestRateLimitByIP_IndependentPerIP(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	handler := middleware.RateLimitByIP(ctx, 0.001, 1)(okHandler)

	// Exhaust the first client's burst.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestFrom("10.0.0.3:1234"))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestFrom("10.0.0.3:1234"))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)

	// A different client is unaffected.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, requestFrom("10.0.0.4:1234"))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimitByIP_CancelledContextStopsCleanup(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	handler := middleware.RateLimitByIP(ctx, 1, 1)(okHandler)
	cancel()

	// The limiter keeps serving after the cleanup goroutine exits.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestFrom("10.0.0.5:1234"))
	assert.Equal(t, http.StatusOK, rec.Code)
}
