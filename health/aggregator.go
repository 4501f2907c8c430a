package health

import (
	"context"
	"sync"
	"time"
)

// Aggregator combines multiple health checkers into a single composite check.
//
// Checks run concurrently under a shared timeout; a slow GitHub probe
// must not delay the in-memory structure checks.
type Aggregator struct {
	timeout  time.Duration
	mu       sync.RWMutex
	checkers map[string]Checker
}

// NewAggregator creates a new health aggregator. Timeout defaults to 10s.
func NewAggregator(timeout time.Duration) *Aggregator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Aggregator{
		timeout:  timeout,
		checkers: make(map[string]Checker),
	}
}

// Register adds a health checker, replacing any with the same name.
func (a *Aggregator) Register(checker Checker) {
	a.mu.Lock()
	a.checkers[checker.Name()] = checker
	a.mu.Unlock()
}

// CheckAll runs all registered health checks and returns the results.
func (a *Aggregator) CheckAll(ctx context.Context) map[string]Result {
	a.mu.RLock()
	checkers := make(map[string]Checker, len(a.checkers))
	for name, checker := range a.checkers {
		checkers[name] = checker
	}
	a.mu.RUnlock()

	results := make(map[string]Result, len(checkers))
	if len(checkers) == 0 {
		return results
	}

	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	var wg sync.WaitGroup
	var resultsMu sync.Mutex
	for name, checker := range checkers {
		wg.Add(1)
		go func(name string, checker Checker) {
			defer wg.Done()
			result := runCheck(ctx, checker)
			resultsMu.Lock()
			results[name] = result
			resultsMu.Unlock()
		}(name, checker)
	}
	wg.Wait()

	return results
}

// OverallStatus computes the composite status from a set of results:
// unhealthy if any check is unhealthy, degraded if any is degraded,
// healthy otherwise.
func OverallStatus(results map[string]Result) Status {
	status := StatusHealthy
	for _, result := range results {
		switch result.Status {
		case StatusUnhealthy:
			return StatusUnhealthy
		case StatusDegraded:
			status = StatusDegraded
		}
	}
	return status
}

func runCheck(ctx context.Context, checker Checker) Result {
	start := time.Now()

	done := make(chan Result, 1)
	go func() {
		done <- checker.Check(ctx)
	}()

	select {
	case result := <-done:
		result.Duration = time.Since(start)
		return result
	case <-ctx.Done():
		result := Unhealthy("check timed out", ctx.Err())
		result.Duration = time.Since(start)
		return result
	}
}
