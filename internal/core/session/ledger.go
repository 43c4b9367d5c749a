package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Store is the durable backend for ledger rows. Implementations do not need
// to be concurrency-safe per key; the Ledger serializes access per session.
type Store interface {
	GetSession(ctx context.Context, id string) (*EditSession, error)
	PutSession(ctx context.Context, s *EditSession) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error)
}

// Ledger applies linearizable updates to per-session usage counters.
type Ledger struct {
	store     Store
	editLimit int
	ttl       time.Duration
	clock     func() time.Time

	mu    sync.Mutex
	locks map[string]*sessionLock
}

type sessionLock struct {
	sync.Mutex
	refs int
}

// NewLedger wires a ledger over the given store. Zero values fall back to
// DefaultEditLimit and DefaultTTL.
func NewLedger(store Store, editLimit int, ttl time.Duration) *Ledger {
	if editLimit <= 0 {
		editLimit = DefaultEditLimit
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Ledger{
		store:     store,
		editLimit: editLimit,
		ttl:       ttl,
		clock:     time.Now,
		locks:     make(map[string]*sessionLock),
	}
}

// Create initializes and persists the ledger row for a new session.
func (l *Ledger) Create(ctx context.Context, id string) (*EditSession, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("session id is required")
	}

	now := l.clock().UTC()
	s := &EditSession{
		SessionID:    id,
		EditLimit:    l.editLimit,
		TotalCostUSD: BaseGenerationCostUSD,
		CreatedAt:    now,
		ExpiresAt:    now.Add(l.ttl),
	}
	if err := l.store.PutSession(ctx, s); err != nil {
		return nil, fmt.Errorf("persist new session: %w", err)
	}
	return s, nil
}

// Load returns the current ledger snapshot, or ErrNotFound when the id is
// unknown or the row is past its TTL. Expiry is evaluated on every read:
// a physically present but expired row is reported as missing.
func (l *Ledger) Load(ctx context.Context, id string) (*EditSession, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}

	s, err := l.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.Expired(l.clock().UTC()) {
		return nil, ErrNotFound
	}
	return s, nil
}

// RecordEdit charges one AI edit plus its cost against the session and
// returns the updated snapshot.
//
// The limit check happens before the increment, so the ceiling is hard:
// once EditsCount reaches EditLimit every further call fails with
// ErrLimitExceeded and the counters stay put.
func (l *Ledger) RecordEdit(ctx context.Context, id string, costUSD float64) (*EditSession, error) {
	return l.record(ctx, id, costUSD, func(s *EditSession) {
		s.EditsCount++
	})
}

// RecordTransform charges one text transform. Transforms share the edit
// ceiling but are counted separately for reporting.
func (l *Ledger) RecordTransform(ctx context.Context, id string, costUSD float64) (*EditSession, error) {
	return l.record(ctx, id, costUSD, func(s *EditSession) {
		s.EditsCount++
		s.TransformsCount++
	})
}

func (l *Ledger) record(ctx context.Context, id string, costUSD float64, apply func(*EditSession)) (*EditSession, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrNotFound
	}
	if costUSD < 0 {
		return nil, fmt.Errorf("negative cost %.4f", costUSD)
	}

	unlock := l.lockSession(id)
	defer unlock()

	s, err := l.store.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.Expired(l.clock().UTC()) {
		return nil, ErrNotFound
	}

	if s.EditsCount >= s.EditLimit {
		s.LimitReached = true
		return nil, fmt.Errorf("%w: %d of %d edits used", ErrLimitExceeded, s.EditsCount, s.EditLimit)
	}

	apply(s)
	s.TotalCostUSD += costUSD
	s.LimitReached = s.EditsCount >= s.EditLimit

	if err := l.store.PutSession(ctx, s); err != nil {
		return nil, fmt.Errorf("persist session update: %w", err)
	}

	snapshot := *s
	return &snapshot, nil
}

// CleanupExpired deletes sessions past their TTL and returns the count.
func (l *Ledger) CleanupExpired(ctx context.Context) (int, error) {
	return l.store.DeleteExpiredSessions(ctx, l.clock().UTC())
}

// EditLimit returns the configured per-session edit ceiling.
func (l *Ledger) EditLimit() int { return l.editLimit }

// TTL returns the configured session lifetime.
func (l *Ledger) TTL() time.Duration { return l.ttl }

// lockSession acquires the per-session mutex, creating it on first use and
// dropping it again once no caller holds a reference. The map itself is
// guarded by l.mu; the per-session locks are held across the store round
// trip so read-modify-write never interleaves for one id.
func (l *Ledger) lockSession(id string) func() {
	l.mu.Lock()
	lk, ok := l.locks[id]
	if !ok {
		lk = &sessionLock{}
		l.locks[id] = lk
	}
	lk.refs++
	l.mu.Unlock()

	lk.Lock()

	return func() {
		lk.Unlock()
		l.mu.Lock()
		lk.refs--
		if lk.refs == 0 {
			delete(l.locks, id)
		}
		l.mu.Unlock()
	}
}
