package memory

import (
	"sync"
	"time"

	"cardshop-bot/internal/ports/output"
)

// Compile-time check to ensure SlidingWindowLimiter implements the output port
var _ output.RateLimiter = (*SlidingWindowLimiter)(nil)

// SlidingWindowLimiter struct - Output adapter implementing per-user
// sliding-window admission control. Each user carries the timestamps of
// their admitted actions inside the trailing window; entries age out lazily
// on the next check. Unlike a fixed bucket this never admits a burst at a
// window boundary. State is per-process and resets on restart by design.
//
// Two independent instances exist in the wired application: a generic
// per-message limiter and a stricter review limiter. They share no state.
type SlidingWindowLimiter struct {
	mu      sync.Mutex
	window  time.Duration
	cap     int
	entries map[int64][]time.Time

	// swapped in tests to simulate the passage of time
	now func() time.Time
}

// NewSlidingWindowLimiter creates a limiter admitting at most cap actions
// per user within the trailing window
func NewSlidingWindowLimiter(window time.Duration, cap int) *SlidingWindowLimiter {
	return &SlidingWindowLimiter{
		window:  window,
		cap:     cap,
		entries: make(map[int64][]time.Time),
		now:     time.Now,
	}
}

// Allow admits and records the action when the user is under the cap.
// When denied, retry is the time until the oldest counted action leaves the
// window; denied actions are not recorded.
func (l *SlidingWindowLimiter) Allow(userID int64) (bool, time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	kept := l.entries[userID][:0]
	for _, ts := range l.entries[userID] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}

	if len(kept) >= l.cap {
		l.entries[userID] = kept
		retry := l.window - now.Sub(kept[0])
		return false, retry
	}

	l.entries[userID] = append(kept, now)
	return true, 0
}
