package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestThrottleAllowsWithinBudget(t *testing.T) {
	store := NewLimiterStore(10, 5)
	handler := Throttle(store)(okHandler())

	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/generate", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}
}

func TestThrottleRejectsBurstOverflow(t *testing.T) {
	store := NewLimiterStore(0.001, 1)
	handler := Throttle(store)(okHandler())

	first := httptest.NewRequest(http.MethodGet, "/generate", nil)
	first.RemoteAddr = "10.0.0.2:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	require.Equal(t, http.StatusOK, rec.Code)

	second := httptest.NewRequest(http.MethodGet, "/generate", nil)
	second.RemoteAddr = "10.0.0.2:1234"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "RATE_LIMITED")
}

func TestThrottleKeysByClientIP(t *testing.T) {
	store := NewLimiterStore(0.001, 1)
	handler := Throttle(store)(okHandler())

	first := httptest.NewRequest(http.MethodGet, "/generate", nil)
	first.RemoteAddr = "10.0.0.3:1234"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	require.Equal(t, http.StatusOK, rec.Code)

	other := httptest.NewRequest(http.MethodGet, "/generate", nil)
	other.RemoteAddr = "10.0.0.4:5678"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, other)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLimiterStoreCleanup(t *testing.T) {
	store := NewLimiterStore(1, 1)
	store.idleTTL = time.Millisecond

	store.Get("stale")
	require.Len(t, store.entries, 1)

	time.Sleep(5 * time.Millisecond)
	store.Cleanup()
	assert.Empty(t, store.entries)
}

func TestThrottleNilStorePassesThrough(t *testing.T) {
	handler := Throttle(nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/generate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}
