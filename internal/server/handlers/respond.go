package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/doorstephq/doorstep/internal/ailink/driver"
	"github.com/doorstephq/doorstep/internal/core/session"
	apperrors "github.com/doorstephq/doorstep/internal/errors"
	"github.com/doorstephq/doorstep/internal/lookup"
)

// maxJSONBodyBytes bounds JSON request bodies. Brochure states carry base64
// photos inline on create, so this is generous.
const maxJSONBodyBytes = 64 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) // nolint:errcheck // headers already sent
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxJSONBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		respondWithError(w, r, apperrors.NewInvalidInputError(fmt.Sprintf("invalid request body: %v", err)))
		return false
	}
	return true
}

// respondDomainError maps domain sentinel errors onto API error envelopes so
// every handler reports the ledger and provider failures the same way.
func respondDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, session.ErrNotFound):
		respondWithError(w, r, apperrors.NewNotFoundError("Session not found or expired"))
	case errors.Is(err, session.ErrLimitExceeded):
		respondWithError(w, r, apperrors.WrapLimitExceeded(r.Context(), err, "Edit limit reached for this session"))
	case errors.Is(err, lookup.ErrUnavailable):
		respondWithError(w, r, apperrors.NewServiceUnavailableError("Address lookup service not available"))
	default:
		var provErr *driver.ProviderError
		if errors.As(err, &provErr) {
			if driver.IsRateLimited(err) {
				respondWithError(w, r, apperrors.NewRateLimitedError("Upstream provider is rate limiting requests"))
				return
			}
			respondWithError(w, r, apperrors.WrapExternalService(r.Context(), err, "Upstream provider request failed"))
			return
		}
		respondWithError(w, r, apperrors.WrapInternal(r.Context(), err, "Request failed"))
	}
}
