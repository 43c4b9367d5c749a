package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func basicAuthHandler(cfg BasicAuthConfig) http.Handler {
	return BasicAuth(cfg)(okHandler())
}

func TestBasicAuthRejectsMissingCredentials(t *testing.T) {
	handler := basicAuthHandler(BasicAuthConfig{Username: "agent", Password: "secret"})

	req := httptest.NewRequest(http.MethodPost, "/generate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, `Basic realm="doorstep"`, rec.Header().Get("WWW-Authenticate"))
	assert.Contains(t, rec.Body.String(), "UNAUTHORIZED")
}

func TestBasicAuthRejectsWrongPassword(t *testing.T) {
	handler := basicAuthHandler(BasicAuthConfig{Username: "agent", Password: "secret"})

	req := httptest.NewRequest(http.MethodPost, "/generate", nil)
	req.SetBasicAuth("agent", "wrong")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestBasicAuthAcceptsValidCredentials(t *testing.T) {
	handler := basicAuthHandler(BasicAuthConfig{Username: "agent", Password: "secret"})

	req := httptest.NewRequest(http.MethodPost, "/generate", nil)
	req.SetBasicAuth("agent", "secret")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBasicAuthSkipsExemptPaths(t *testing.T) {
	handler := basicAuthHandler(BasicAuthConfig{Username: "agent", Password: "secret"})

	paths := []string{
		"/health",
		"/health/ready",
		"/version",
		"/metrics",
		"/api/brochure/session/abc123/photo/p1",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
	}
}

func TestBasicAuthEmptyCredentialsPassThrough(t *testing.T) {
	handler := basicAuthHandler(BasicAuthConfig{})

	req := httptest.NewRequest(http.MethodPost, "/generate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}
