package provider

import (
	"context"
	"fmt"
	"sync"

	"github.com/Product-Data-Cloud/github-mcp-remote/secret"
)

// Lazy constructs the shared GitHub client on first use and hands out
// the same instance for the rest of the process lifetime.
//
// Construction is retried on each call until it succeeds, so a token
// exported after startup is picked up on the next tool call. A handle
// is never refreshed or invalidated once built: a revoked credential
// surfaces as an authorization failure on the next provider call.
type Lazy struct {
	credential secret.Source

	mu  sync.Mutex
	api API
}

// NewLazy creates a lazy client source backed by the given credential.
func NewLazy(credential secret.Source) *Lazy {
	return &Lazy{credential: credential}
}

// Client returns the shared handle, constructing it on first use.
func (l *Lazy) Client(ctx context.Context) (API, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.api != nil {
		return l.api, nil
	}

	token, err := l.credential.Resolve(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w (%v)", ErrNoToken, err)
	}

	l.api = NewClient(token)
	return l.api, nil
}

// Ensure Lazy implements Source
var _ Source = (*Lazy)(nil)
