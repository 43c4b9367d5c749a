// Package session tracks per-brochure-session AI usage: edit counts, cost
// accrual, and the edit ceiling.
//
// Multiple HTTP requests can race on the same session id (a user triggering
// two edits quickly), so every read-modify-write goes through per-session
// mutual exclusion. Unrelated sessions proceed fully in parallel.
package session

import (
	"errors"
	"time"
)

// DefaultEditLimit caps AI edits per brochure session.
const DefaultEditLimit = 100

// DefaultTTL is how long a session stays accessible after creation.
const DefaultTTL = 24 * time.Hour

// BaseGenerationCostUSD seeds the cost accumulator on session creation; it
// covers the initial full-brochure generation that precedes any edit.
const BaseGenerationCostUSD = 0.183

var (
	// ErrNotFound reports an unknown or expired session id. Callers treat
	// it as "recreate the session", not as a system failure.
	ErrNotFound = errors.New("session not found")

	// ErrLimitExceeded reports that the edit ceiling was already reached.
	// Surfaced to end users as a quota message (HTTP 429), never retried.
	ErrLimitExceeded = errors.New("edit limit reached")
)

// EditSession is the usage ledger row for one brochure-editing session.
type EditSession struct {
	SessionID       string    `json:"session_id"`
	EditsCount      int       `json:"edits_count"`
	TransformsCount int       `json:"transforms_count"`
	EditLimit       int       `json:"edit_limit"`
	TotalCostUSD    float64   `json:"total_cost_usd"`
	LimitReached    bool      `json:"edit_limit_reached"`
	CreatedAt       time.Time `json:"created_at"`
	ExpiresAt       time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its TTL at the given instant.
func (s *EditSession) Expired(now time.Time) bool {
	if s == nil {
		return true
	}
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// Remaining returns how many edits are left before the ceiling.
func (s *EditSession) Remaining() int {
	if s == nil {
		return 0
	}
	left := s.EditLimit - s.EditsCount
	if left < 0 {
		return 0
	}
	return left
}

// EditUsage is the usage snapshot returned to API clients after a metered
// request.
type EditUsage struct {
	EditsCount         int     `json:"edits_count"`
	EditLimit          int     `json:"edit_limit"`
	TotalCostUSD       float64 `json:"total_cost_usd"`
	EditLimitReached   bool    `json:"edit_limit_reached"`
	ThisRequestCostUSD float64 `json:"this_request_cost_usd,omitempty"`
}
