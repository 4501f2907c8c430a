package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// MaxKeyLength is the maximum allowed length for a cache key.
const MaxKeyLength = 512

// Sentinel errors for cache operations.
var (
	ErrInvalidKey = errors.New("cache: key is invalid")
	ErrKeyTooLong = errors.New("cache: key exceeds max length")
)

// Cache is the interface for caching file read results.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: Get never errors; it returns (nil, false) on miss or expiry.
// - Expiry: stale entries are evicted lazily, on lookup only.
type Cache interface {
	// Get retrieves a cached value. Returns (nil, false) on miss.
	Get(ctx context.Context, key string) ([]byte, bool)

	// Set stores a value with the given TTL, unconditionally
	// overwriting any existing entry. TTL=0 means no caching.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a cached value. Idempotent - no error on miss.
	Delete(ctx context.Context, key string) error

	// Len returns the number of stored entries, including entries that
	// have expired but have not yet been looked up.
	Len() int
}

// ValidateKey checks if a key is valid for caching.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	if len(key) > MaxKeyLength {
		return ErrKeyTooLong
	}
	if strings.ContainsAny(key, "\n\r") {
		return ErrInvalidKey
	}
	return nil
}
