package cache

import "time"

// Policy configures caching behavior for file reads.
type Policy struct {
	// TTL is how long an entry stays valid after it is written.
	// If zero, caching is disabled.
	TTL time.Duration
}

// DefaultPolicy returns the default caching policy. TTL: 5 minutes.
func DefaultPolicy() Policy {
	return Policy{TTL: 5 * time.Minute}
}

// NoCachePolicy returns a policy that disables caching entirely.
func NoCachePolicy() Policy {
	return Policy{}
}

// ShouldCache returns true if caching is enabled by this policy.
func (p Policy) ShouldCache() bool {
	return p.TTL > 0
}
