package store

import (
	"context"
	"errors"
	"fmt"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS edit_sessions (
		session_id TEXT PRIMARY KEY,
		edits_count INTEGER NOT NULL DEFAULT 0,
		transforms_count INTEGER NOT NULL DEFAULT 0,
		edit_limit INTEGER NOT NULL,
		total_cost_usd REAL NOT NULL DEFAULT 0,
		limit_reached INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		expires_at INTEGER NOT NULL
	);`,
	`CREATE INDEX IF NOT EXISTS idx_edit_sessions_expires ON edit_sessions(expires_at);`,
	`CREATE TABLE IF NOT EXISTS brochure_states (
		session_id TEXT PRIMARY KEY,
		state TEXT NOT NULL,
		updated_at INTEGER NOT NULL
	);`,
}

// Migrate ensures the required database tables exist.
func (s *Store) Migrate(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	for _, stmt := range schemaStatements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store migration failed: %w", err)
		}
	}

	return nil
}
