package pacing

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWaitIfNeeded_FirstCallImmediate(t *testing.T) {
	p := NewPacer(time.Second)

	start := time.Now()
	err := p.WaitIfNeeded(context.Background())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 100*time.Millisecond, "first grant must not wait")
}

func TestWaitIfNeeded_ZeroIntervalDisablesPacing(t *testing.T) {
	p := NewPacer(0)

	start := time.Now()
	for i := 0; i < 50; i++ {
		require.NoError(t, p.WaitIfNeeded(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestWaitIfNeeded_ConcurrentGrantsAreSpaced(t *testing.T) {
	const (
		interval = 30 * time.Millisecond
		waiters  = 5
	)

	p := NewPacer(interval)

	var (
		mu     sync.Mutex
		grants []time.Time
		wg     sync.WaitGroup
	)

	wg.Add(waiters)
	for i := 0; i < waiters; i++ {
		go func() {
			defer wg.Done()
			assert.NoError(t, p.WaitIfNeeded(context.Background()))
			now := time.Now()
			mu.Lock()
			grants = append(grants, now)
			mu.Unlock()
		}()
	}
	wg.Wait()

	require.Len(t, grants, waiters)
	sort.Slice(grants, func(i, j int) bool { return grants[i].Before(grants[j]) })

	// Timestamps are captured after the grant, so allow a small scheduling
	// tolerance rather than demanding the exact interval.
	const jitter = 5 * time.Millisecond
	for i := 1; i < len(grants); i++ {
		gap := grants[i].Sub(grants[i-1])
		assert.GreaterOrEqual(t, gap, interval-jitter,
			"grants %d and %d too close: %v", i-1, i, gap)
	}
}

func TestWaitIfNeeded_CancelledWaiterDoesNotCorruptState(t *testing.T) {
	const interval = 50 * time.Millisecond

	p := NewPacer(interval)
	require.NoError(t, p.WaitIfNeeded(context.Background()))

	// A waiter that gives up must not advance the last-grant timestamp.
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()
	err := p.WaitIfNeeded(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The next successful grant is still paced from the first grant, not
	// from the abandoned attempt.
	start := time.Now()
	require.NoError(t, p.WaitIfNeeded(context.Background()))
	elapsed := time.Since(start)
	assert.Less(t, elapsed, interval, "cancelled waiter must not extend the wait")
}

func TestWaitIfNeeded_SequentialCallsWait(t *testing.T) {
	const interval = 40 * time.Millisecond

	p := NewPacer(interval)

	first := time.Now()
	require.NoError(t, p.WaitIfNeeded(context.Background()))
	require.NoError(t, p.WaitIfNeeded(context.Background()))
	elapsed := time.Since(first)

	assert.GreaterOrEqual(t, elapsed, interval-5*time.Millisecond)
}

func TestWaitIfNeeded_NilPacerIsNoop(t *testing.T) {
	var p *Pacer
	assert.NoError(t, p.WaitIfNeeded(context.Background()))
}

func TestInterval(t *testing.T) {
	assert.Equal(t, DefaultMinInterval, NewPacer(DefaultMinInterval).Interval())

	var p *Pacer
	assert.Equal(t, time.Duration(0), p.Interval())
}
