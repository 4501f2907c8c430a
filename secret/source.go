package secret

import "context"

// Source yields a credential value on demand.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must never log or embed credential values in errors.
type Source interface {
	// Name identifies the source for diagnostics.
	Name() string

	// Resolve returns the credential value. It errors if the credential
	// is unavailable; it never returns an empty value with a nil error.
	Resolve(ctx context.Context) (string, error)
}

// Static is a fixed credential value, useful for tests.
type Static string

// Name returns the source name.
func (Static) Name() string { return "static" }

// Resolve returns the fixed value.
func (s Static) Resolve(_ context.Context) (string, error) {
	if s == "" {
		return "", ErrEmptyCredential
	}
	return string(s), nil
}

// Ensure Static implements Source
var _ Source = Static("")
