package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memStore is a plain map store with no per-key safety of its own; the
// ledger has to provide the mutual exclusion.
type memStore struct {
	mu       sync.Mutex
	sessions map[string]EditSession
}

func newMemStore() *memStore {
	return &memStore{sessions: make(map[string]EditSession)}
}

func (m *memStore) GetSession(ctx context.Context, id string) (*EditSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, nil
	}
	copied := s
	return &copied, nil
}

func (m *memStore) PutSession(ctx context.Context, s *EditSession) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.SessionID] = *s
	return nil
}

func (m *memStore) DeleteExpiredSessions(ctx context.Context, now time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	deleted := 0
	for id, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			delete(m.sessions, id)
			deleted++
		}
	}
	return deleted, nil
}

func TestLedger_CreateSeedsBaseCost(t *testing.T) {
	l := NewLedger(newMemStore(), 0, 0)

	s, err := l.Create(context.Background(), "sess-1")
	require.NoError(t, err)

	assert.Equal(t, "sess-1", s.SessionID)
	assert.Equal(t, DefaultEditLimit, s.EditLimit)
	assert.InDelta(t, BaseGenerationCostUSD, s.TotalCostUSD, 1e-9)
	assert.Zero(t, s.EditsCount)
	assert.False(t, s.LimitReached)
	assert.Equal(t, DefaultTTL, s.ExpiresAt.Sub(s.CreatedAt))
}

func TestLedger_RecordEditAccruesCost(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(newMemStore(), 100, time.Hour)
	_, err := l.Create(ctx, "sess-1")
	require.NoError(t, err)

	s, err := l.RecordEdit(ctx, "sess-1", 0.0045)
	require.NoError(t, err)
	assert.Equal(t, 1, s.EditsCount)
	assert.InDelta(t, BaseGenerationCostUSD+0.0045, s.TotalCostUSD, 1e-9)
	assert.False(t, s.LimitReached)
}

func TestLedger_HardCeilingNoOvershoot(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(newMemStore(), 100, time.Hour)
	_, err := l.Create(ctx, "sess-1")
	require.NoError(t, err)

	var last *EditSession
	for i := 0; i < 100; i++ {
		s, err := l.RecordEdit(ctx, "sess-1", 0.01)
		require.NoError(t, err, "edit %d should be accepted", i+1)
		last = s
	}
	require.Equal(t, 100, last.EditsCount)
	assert.True(t, last.LimitReached)

	_, err = l.RecordEdit(ctx, "sess-1", 0.01)
	require.ErrorIs(t, err, ErrLimitExceeded)

	// The rejected call must leave the counters untouched.
	s, err := l.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 100, s.EditsCount)
	assert.InDelta(t, BaseGenerationCostUSD+100*0.01, s.TotalCostUSD, 1e-9)
}

func TestLedger_ConcurrentEditsNoLostUpdate(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(newMemStore(), 1000, time.Hour)
	_, err := l.Create(ctx, "sess-1")
	require.NoError(t, err)

	const workers = 2
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			_, err := l.RecordEdit(ctx, "sess-1", 0.01)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	s, err := l.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 2, s.EditsCount)
	assert.InDelta(t, BaseGenerationCostUSD+0.02, s.TotalCostUSD, 1e-9)
}

func TestLedger_ManyConcurrentEditsRespectLimit(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(newMemStore(), 10, time.Hour)
	_, err := l.Create(ctx, "sess-1")
	require.NoError(t, err)

	const attempts = 25
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		rejected int
	)
	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			defer wg.Done()
			_, err := l.RecordEdit(ctx, "sess-1", 0.01)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				accepted++
			default:
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, accepted)
	assert.Equal(t, attempts-10, rejected)

	s, err := l.Load(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 10, s.EditsCount)
	assert.True(t, s.LimitReached)
}

func TestLedger_LoadExpiredReturnsNotFound(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := NewLedger(store, 100, time.Hour)

	_, err := l.Create(ctx, "sess-1")
	require.NoError(t, err)

	// Jump the clock past the TTL; the row still physically exists.
	l.clock = func() time.Time { return time.Now().Add(2 * time.Hour) }

	_, err = l.Load(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.RecordEdit(ctx, "sess-1", 0.01)
	assert.ErrorIs(t, err, ErrNotFound)

	store.mu.Lock()
	_, exists := store.sessions["sess-1"]
	store.mu.Unlock()
	assert.True(t, exists, "expired row should still be physically present until cleanup")
}

func TestLedger_CleanupExpired(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	l := NewLedger(store, 100, time.Millisecond)

	_, err := l.Create(ctx, "old")
	require.NoError(t, err)

	l.clock = func() time.Time { return time.Now().Add(time.Minute) }
	deleted, err := l.CleanupExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	_, err = l.Load(ctx, "old")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLedger_UnknownSession(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(newMemStore(), 100, time.Hour)

	_, err := l.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.RecordEdit(ctx, "missing", 0.01)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = l.RecordTransform(ctx, "", 0.01)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLedger_RecordTransformCountsBoth(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(newMemStore(), 100, time.Hour)
	_, err := l.Create(ctx, "sess-1")
	require.NoError(t, err)

	s, err := l.RecordTransform(ctx, "sess-1", 0.002)
	require.NoError(t, err)
	assert.Equal(t, 1, s.EditsCount)
	assert.Equal(t, 1, s.TransformsCount)
}

func TestEditSession_Remaining(t *testing.T) {
	s := &EditSession{EditLimit: 100, EditsCount: 97}
	assert.Equal(t, 3, s.Remaining())

	s.EditsCount = 150
	assert.Equal(t, 0, s.Remaining())

	var nilSession *EditSession
	assert.Equal(t, 0, nilSession.Remaining())
}
