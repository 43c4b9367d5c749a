package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/doorstephq/doorstep/internal/core"
	"github.com/doorstephq/doorstep/internal/core/session"
)

// GetSession returns the ledger row for a session id, or nil when absent.
// TTL evaluation is the ledger's job; this returns whatever is stored.
func (s *Store) GetSession(ctx context.Context, id string) (*session.EditSession, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("session id is required")
	}

	var (
		edits        int
		transforms   int
		editLimit    int
		totalCost    float64
		limitReached int
		createdAt    int64
		expiresAt    int64
	)

	row := s.DB.QueryRowContext(ctx, `
		SELECT edits_count, transforms_count, edit_limit, total_cost_usd, limit_reached, created_at, expires_at
		FROM edit_sessions
		WHERE session_id = ?
	`, id)

	if err := row.Scan(&edits, &transforms, &editLimit, &totalCost, &limitReached, &createdAt, &expiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch session: %w", err)
	}

	return &session.EditSession{
		SessionID:       id,
		EditsCount:      edits,
		TransformsCount: transforms,
		EditLimit:       editLimit,
		TotalCostUSD:    totalCost,
		LimitReached:    limitReached != 0,
		CreatedAt:       time.Unix(createdAt, 0).UTC(),
		ExpiresAt:       time.Unix(expiresAt, 0).UTC(),
	}, nil
}

// PutSession upserts a ledger row.
func (s *Store) PutSession(ctx context.Context, es *session.EditSession) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	if es == nil || strings.TrimSpace(es.SessionID) == "" {
		return errors.New("session is required")
	}

	limitReached := 0
	if es.LimitReached {
		limitReached = 1
	}

	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO edit_sessions (session_id, edits_count, transforms_count, edit_limit, total_cost_usd, limit_reached, created_at, expires_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			edits_count = excluded.edits_count,
			transforms_count = excluded.transforms_count,
			edit_limit = excluded.edit_limit,
			total_cost_usd = excluded.total_cost_usd,
			limit_reached = excluded.limit_reached,
			expires_at = excluded.expires_at
	`, es.SessionID, es.EditsCount, es.TransformsCount, es.EditLimit, es.TotalCostUSD, limitReached,
		es.CreatedAt.UTC().Unix(), es.ExpiresAt.UTC().Unix())
	if err != nil {
		return fmt.Errorf("store session: %w", err)
	}

	return nil
}

// DeleteExpiredSessions removes ledger rows and brochure states whose TTL
// passed before now, returning how many sessions were deleted.
func (s *Store) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	if s == nil || s.DB == nil {
		return 0, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	cutoff := now.UTC().Unix()

	// Brochure states ride along with their ledger rows.
	if _, err := s.DB.ExecContext(ctx, `
		DELETE FROM brochure_states WHERE session_id IN (
			SELECT session_id FROM edit_sessions WHERE expires_at <= ?
		)
	`, cutoff); err != nil {
		return 0, fmt.Errorf("delete expired states: %w", err)
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM edit_sessions WHERE expires_at <= ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted sessions: %w", err)
	}
	return int(affected), nil
}

// ListSessions returns every ledger row ordered by creation time, newest
// first. Used by the sessions CLI.
func (s *Store) ListSessions(ctx context.Context) ([]*session.EditSession, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	rows, err := s.DB.QueryContext(ctx, `
		SELECT session_id, edits_count, transforms_count, edit_limit, total_cost_usd, limit_reached, created_at, expires_at
		FROM edit_sessions
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close() // nolint:errcheck // best-effort cleanup on SQL rows

	var out []*session.EditSession
	for rows.Next() {
		var (
			id           string
			edits        int
			transforms   int
			editLimit    int
			totalCost    float64
			limitReached int
			createdAt    int64
			expiresAt    int64
		)
		if err := rows.Scan(&id, &edits, &transforms, &editLimit, &totalCost, &limitReached, &createdAt, &expiresAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		out = append(out, &session.EditSession{
			SessionID:       id,
			EditsCount:      edits,
			TransformsCount: transforms,
			EditLimit:       editLimit,
			TotalCostUSD:    totalCost,
			LimitReached:    limitReached != 0,
			CreatedAt:       time.Unix(createdAt, 0).UTC(),
			ExpiresAt:       time.Unix(expiresAt, 0).UTC(),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}

	return out, nil
}

// GetBrochureState loads the saved brochure editor payload for a session.
func (s *Store) GetBrochureState(ctx context.Context, id string) (*core.BrochureState, error) {
	if s == nil || s.DB == nil {
		return nil, errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("session id is required")
	}

	var payload string
	row := s.DB.QueryRowContext(ctx, `SELECT state FROM brochure_states WHERE session_id = ?`, id)
	if err := row.Scan(&payload); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch brochure state: %w", err)
	}

	var state core.BrochureState
	if err := json.Unmarshal([]byte(payload), &state); err != nil {
		return nil, fmt.Errorf("decode brochure state: %w", err)
	}
	return &state, nil
}

// PutBrochureState upserts the brochure editor payload for a session.
func (s *Store) PutBrochureState(ctx context.Context, id string, state *core.BrochureState) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return errors.New("session id is required")
	}
	if state == nil {
		return errors.New("brochure state is required")
	}

	payload, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode brochure state: %w", err)
	}

	_, err = s.DB.ExecContext(ctx, `
		INSERT INTO brochure_states (session_id, state, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(session_id) DO UPDATE SET
			state = excluded.state,
			updated_at = excluded.updated_at
	`, id, string(payload), time.Now().UTC().Unix())
	if err != nil {
		return fmt.Errorf("store brochure state: %w", err)
	}

	return nil
}
