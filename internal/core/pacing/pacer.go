// Package pacing provides the process-wide spacing gate for calls to
// rate-sensitive upstream providers.
//
// The vision provider rejects bursts of requests well below its documented
// quota, so every outbound call goes through a single Pacer shared by all
// request handlers. The Pacer guarantees that no two grants are closer
// together than the configured minimum interval, regardless of how many
// goroutines are waiting.
package pacing

import (
	"context"
	"sync"
	"time"
)

// DefaultMinInterval is the spacing applied to the vision provider.
// 1.2s keeps a batch of concurrent photo analyses under the provider's
// burst ceiling.
const DefaultMinInterval = 1200 * time.Millisecond

// Pacer serializes grants so consecutive grants are at least MinInterval
// apart. Grant order among concurrent waiters is unspecified; only the
// spacing is guaranteed.
type Pacer struct {
	mu        sync.Mutex
	interval  time.Duration
	lastGrant time.Time
	granted   bool

	// clock and sleeper are swappable for tests.
	clock   func() time.Time
	sleeper func(ctx context.Context, d time.Duration) error
}

// NewPacer returns a Pacer with the given minimum interval between grants.
// A non-positive interval disables pacing (every call is granted at once).
func NewPacer(minInterval time.Duration) *Pacer {
	return &Pacer{
		interval: minInterval,
		clock:    time.Now,
		sleeper:  sleepContext,
	}
}

// WaitIfNeeded blocks the calling goroutine until a grant is available, then
// records the grant. The first call on a fresh Pacer returns immediately.
//
// The last-grant timestamp is only written at the moment of an actual grant:
// a caller that gives up (context cancelled) leaves the shared state exactly
// as it found it, so remaining waiters keep their spacing guarantee.
func (p *Pacer) WaitIfNeeded(ctx context.Context) error {
	if p == nil || p.interval <= 0 {
		return ctx.Err()
	}

	for {
		p.mu.Lock()
		now := p.clock()
		if !p.granted || now.Sub(p.lastGrant) >= p.interval {
			p.lastGrant = now
			p.granted = true
			p.mu.Unlock()
			return nil
		}
		wait := p.interval - now.Sub(p.lastGrant)
		p.mu.Unlock()

		// Sleep outside the lock, then re-check: another waiter may have
		// taken the slot we were waiting for.
		if err := p.sleeper(ctx, wait); err != nil {
			return err
		}
	}
}

// Interval returns the configured minimum spacing.
func (p *Pacer) Interval() time.Duration {
	if p == nil {
		return 0
	}
	return p.interval
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
