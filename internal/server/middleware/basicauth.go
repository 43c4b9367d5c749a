package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/fulmenhq/gofulmen/errors"
)

// BasicAuthConfig configures the optional HTTP basic auth gate.
type BasicAuthConfig struct {
	Username string
	Password string

	// SkipPrefixes lists path prefixes served without credentials: health
	// probes, version, metrics scraping, and session photo URLs that are
	// embedded directly in brochure previews.
	SkipPrefixes []string
}

// DefaultSkipPrefixes are the paths exempt from basic auth.
var DefaultSkipPrefixes = []string{
	"/health",
	"/version",
	"/metrics",
	"/api/brochure/session/",
}

// BasicAuth enforces HTTP basic auth on every route except the configured
// skip prefixes. With empty credentials the middleware is a pass-through.
func BasicAuth(cfg BasicAuthConfig) func(http.Handler) http.Handler {
	skip := cfg.SkipPrefixes
	if skip == nil {
		skip = DefaultSkipPrefixes
	}
	enabled := cfg.Username != "" && cfg.Password != ""

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !enabled || skipAuth(r.URL.Path, skip) {
				next.ServeHTTP(w, r)
				return
			}

			username, password, ok := r.BasicAuth()
			if !ok || !credentialsMatch(username, password, cfg.Username, cfg.Password) {
				w.Header().Set("WWW-Authenticate", `Basic realm="doorstep"`)
				envelope := errors.NewErrorEnvelope("UNAUTHORIZED", "Authentication required").
					WithCorrelationID(GetRequestID(r.Context()))
				writeErrorResponse(w, envelope, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func skipAuth(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func credentialsMatch(gotUser, gotPass, wantUser, wantPass string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(gotUser), []byte(wantUser)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(gotPass), []byte(wantPass)) == 1
	return userOK && passOK
}
