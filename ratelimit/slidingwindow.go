package ratelimit

import (
	"errors"
	"sync"
	"time"
)

// ErrRateLimited is returned when a tool's quota is exhausted.
var ErrRateLimited = errors.New("ratelimit: too many calls")

// Config configures the sliding-window limiter.
type Config struct {
	// Window is the trailing interval over which calls are counted.
	// Default: 1 hour
	Window time.Duration

	// Limit is the maximum number of calls admitted per tool name
	// within the window.
	// Default: 100
	Limit int
}

// SlidingWindow admits or rejects calls per tool name based on the
// count of admitted calls in the trailing window.
//
// Contract:
//   - Concurrency: safe for concurrent use; the lock is held only for
//     in-memory bookkeeping, never across I/O.
//   - Isolation: one tool exhausting its quota never affects another.
//   - Rejected calls are not recorded.
type SlidingWindow struct {
	config Config

	mu    sync.Mutex
	calls map[string][]time.Time
	now   func() time.Time
}

// New creates a sliding-window limiter.
func New(config Config) *SlidingWindow {
	// Apply defaults
	if config.Window <= 0 {
		config.Window = time.Hour
	}
	if config.Limit <= 0 {
		config.Limit = 100
	}

	return &SlidingWindow{
		config: config,
		calls:  make(map[string][]time.Time),
		now:    time.Now,
	}
}

// Allow reports whether a call to tool is admitted, recording the call
// timestamp if so. Timestamps older than the window are pruned first.
func (sw *SlidingWindow) Allow(tool string) bool {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := sw.now()
	kept := sw.pruneLocked(tool, now)
	if len(kept) >= sw.config.Limit {
		return false
	}

	sw.calls[tool] = append(kept, now)
	return true
}

// Usage returns the number of in-window calls recorded for tool.
func (sw *SlidingWindow) Usage(tool string) int {
	sw.mu.Lock()
	defer sw.mu.Unlock()
	return len(sw.pruneLocked(tool, sw.now()))
}

// Remaining returns how many more calls tool may make within the window.
func (sw *SlidingWindow) Remaining(tool string) int {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	remaining := sw.config.Limit - len(sw.pruneLocked(tool, sw.now()))
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// Limit returns the configured per-tool ceiling.
func (sw *SlidingWindow) Limit() int {
	return sw.config.Limit
}

// Window returns the configured trailing window.
func (sw *SlidingWindow) Window() time.Duration {
	return sw.config.Window
}

// Snapshot returns the in-window call count for every tool name seen so
// far. Tool names whose calls have all aged out still appear with a
// zero count; records are never destroyed for the process lifetime.
func (sw *SlidingWindow) Snapshot() map[string]int {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := sw.now()
	snapshot := make(map[string]int, len(sw.calls))
	for tool := range sw.calls {
		snapshot[tool] = len(sw.pruneLocked(tool, now))
	}
	return snapshot
}

// pruneLocked drops timestamps older than the window for tool and
// returns the retained slice. Callers must hold sw.mu.
func (sw *SlidingWindow) pruneLocked(tool string, now time.Time) []time.Time {
	cutoff := now.Add(-sw.config.Window)

	recorded := sw.calls[tool]
	kept := recorded[:0]
	for _, ts := range recorded {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	sw.calls[tool] = kept
	return kept
}
