package handlers

import (
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/doorstephq/doorstep/internal/core"
	"github.com/doorstephq/doorstep/internal/core/session"
	"github.com/doorstephq/doorstep/internal/core/store"
	apperrors "github.com/doorstephq/doorstep/internal/errors"
	"github.com/doorstephq/doorstep/internal/observability"
	"github.com/doorstephq/doorstep/internal/photos"
	"github.com/doorstephq/doorstep/internal/scoring"
)

// photoCacheControl lets browsers cache served photos for a day; they never
// change once written.
const photoCacheControl = "public, max-age=86400"

// Sessions serves the brochure session endpoints: create, load, auto-save,
// photo serving, and expired cleanup.
type Sessions struct {
	Ledger *session.Ledger
	Store  *store.Store
	Photos *photos.Store
}

type sessionResponse struct {
	SessionID string             `json:"session_id"`
	ExpiresAt time.Time          `json:"expires_at"`
	PhotoURLs map[string]string  `json:"photo_urls"`
	Data      *core.BrochureState `json:"data"`
	Usage     *session.EditUsage `json:"usage_stats,omitempty"`
}

// Create handles POST /api/brochure/session. Photos arrive base64-inline;
// they are scored, written to disk, and their data URLs rewritten to serve
// paths before the state is persisted. A ledger row is seeded alongside.
func (h *Sessions) Create(w http.ResponseWriter, r *http.Request) {
	var state core.BrochureState
	if !decodeJSON(w, r, &state) {
		return
	}

	character := scoring.CharacterFromPreferences(state.Preferences)
	scored := scoring.ScoreSessionPhotos(state.Photos, character)
	if observability.ServerLogger != nil {
		observability.ServerLogger.Info("Scored session photos",
			zap.Int("scored", scored),
			zap.Int("total", len(state.Photos)),
			zap.String("character", string(character)))
	}

	sessionID := uuid.New().String()

	persisted, err := h.Photos.PersistSessionPhotos(sessionID, state.Photos)
	if err != nil {
		respondWithError(w, r, apperrors.WrapInternal(r.Context(), err, "Failed to store session photos"))
		return
	}
	state.Photos = persisted
	state.UpdatedAt = time.Now().UTC()

	ledgerRow, err := h.Ledger.Create(r.Context(), sessionID)
	if err != nil {
		respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "Failed to create session"))
		return
	}

	if err := h.Store.PutBrochureState(r.Context(), sessionID, &state); err != nil {
		respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "Failed to save session state"))
		return
	}

	photoURLs, err := h.Photos.PhotoURLs(sessionID)
	if err != nil {
		photoURLs = map[string]string{}
	}

	if observability.ServerLogger != nil {
		observability.ServerLogger.Info("Brochure session created",
			zap.String("session_id", sessionID),
			zap.String("user_email", state.UserEmail),
			zap.Int("photos", len(state.Photos)))
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		SessionID: sessionID,
		ExpiresAt: ledgerRow.ExpiresAt,
		PhotoURLs: photoURLs,
		Data:      &state,
		Usage:     usageSnapshot(ledgerRow),
	})
}

// Load handles GET /api/brochure/session/{id}. An expired session is a 404.
func (h *Sessions) Load(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	ledgerRow, err := h.Ledger.Load(r.Context(), sessionID)
	if err != nil {
		respondDomainError(w, r, err)
		return
	}

	state, err := h.Store.GetBrochureState(r.Context(), sessionID)
	if err != nil {
		respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "Failed to load session state"))
		return
	}
	if state == nil {
		respondWithError(w, r, apperrors.NewNotFoundError("Session not found or expired"))
		return
	}

	photoURLs, err := h.Photos.PhotoURLs(sessionID)
	if err != nil {
		photoURLs = map[string]string{}
	}

	writeJSON(w, http.StatusOK, sessionResponse{
		SessionID: sessionID,
		ExpiresAt: ledgerRow.ExpiresAt,
		PhotoURLs: photoURLs,
		Data:      state,
		Usage:     usageSnapshot(ledgerRow),
	})
}

type sessionUpdateResponse struct {
	Status    string    `json:"status"`
	SessionID string    `json:"session_id"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Update handles PUT /api/brochure/session/{id} (auto-save). New inline
// photos are persisted; already-served photos keep their URLs.
func (h *Sessions) Update(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")

	if _, err := h.Ledger.Load(r.Context(), sessionID); err != nil {
		respondDomainError(w, r, err)
		return
	}

	var state core.BrochureState
	if !decodeJSON(w, r, &state) {
		return
	}

	persisted, err := h.Photos.PersistSessionPhotos(sessionID, state.Photos)
	if err != nil {
		respondWithError(w, r, apperrors.WrapInternal(r.Context(), err, "Failed to store session photos"))
		return
	}
	state.Photos = persisted
	state.UpdatedAt = time.Now().UTC()

	if err := h.Store.PutBrochureState(r.Context(), sessionID, &state); err != nil {
		respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "Failed to save session state"))
		return
	}

	writeJSON(w, http.StatusOK, sessionUpdateResponse{
		Status:    "ok",
		SessionID: sessionID,
		UpdatedAt: state.UpdatedAt,
	})
}

// Photo handles GET /api/brochure/session/{id}/photo/{photo_id}. The thumb
// query parameter serves a downscaled JPEG instead of the original.
func (h *Sessions) Photo(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "id")
	photoID := chi.URLParam(r, "photo_id")

	path, contentType, err := h.Photos.PhotoPath(sessionID, photoID)
	if err != nil {
		respondWithError(w, r, apperrors.NewNotFoundError(fmt.Sprintf("Photo %s not found", photoID)))
		return
	}

	if thumb := r.URL.Query().Get("thumb"); thumb != "" {
		size, err := strconv.Atoi(thumb)
		if err != nil || size <= 0 {
			size = 0
		}
		thumbPath, err := h.Photos.Thumbnail(sessionID, photoID, size)
		if err == nil {
			path = thumbPath
			contentType = "image/jpeg"
		} else if observability.ServerLogger != nil {
			observability.ServerLogger.Warn("Thumbnail generation failed, serving original",
				zap.String("session_id", sessionID),
				zap.String("photo_id", photoID),
				zap.Error(err))
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", photoCacheControl)
	http.ServeFile(w, r, path)
}

type cleanupResponse struct {
	Status       string `json:"status"`
	DeletedCount int    `json:"deleted_count"`
	Message      string `json:"message"`
}

// Cleanup handles DELETE /api/brochure/session/cleanup: expired ledger rows
// and brochure states go from the store, photo directories from disk.
func (h *Sessions) Cleanup(w http.ResponseWriter, r *http.Request) {
	all, err := h.Store.ListSessions(r.Context())
	if err != nil {
		respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "Failed to list sessions"))
		return
	}

	now := time.Now().UTC()
	for _, row := range all {
		if !row.Expired(now) {
			continue
		}
		if err := h.Photos.DeleteSession(row.SessionID); err != nil && !os.IsNotExist(err) {
			if observability.ServerLogger != nil {
				observability.ServerLogger.Warn("Failed to delete session photos",
					zap.String("session_id", row.SessionID),
					zap.Error(err))
			}
		}
	}

	deleted, err := h.Ledger.CleanupExpired(r.Context())
	if err != nil {
		respondWithError(w, r, apperrors.WrapDatabaseError(r.Context(), err, "Cleanup failed"))
		return
	}

	if observability.ServerLogger != nil {
		observability.ServerLogger.Info("Expired sessions cleaned up",
			zap.Int("deleted", deleted))
	}

	writeJSON(w, http.StatusOK, cleanupResponse{
		Status:       "ok",
		DeletedCount: deleted,
		Message:      fmt.Sprintf("Deleted %d expired session(s)", deleted),
	})
}

func usageSnapshot(row *session.EditSession) *session.EditUsage {
	if row == nil {
		return nil
	}
	return &session.EditUsage{
		EditsCount:       row.EditsCount,
		EditLimit:        row.EditLimit,
		TotalCostUSD:     row.TotalCostUSD,
		EditLimitReached: row.LimitReached,
	}
}
