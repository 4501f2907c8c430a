package secret

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Sentinel errors for credential resolution.
var (
	// ErrEmptyCredential is returned when a source resolves to an empty value.
	ErrEmptyCredential = errors.New("secret: credential is empty")
)

// EnvSource resolves a credential from a process environment variable.
//
// Resolution is strict: an unset or blank variable is an error, reported
// with the variable name so operators can fix their environment.
type EnvSource struct {
	key string
}

// Env creates a source backed by the named environment variable.
func Env(key string) *EnvSource {
	return &EnvSource{key: key}
}

// Name returns the source name.
func (e *EnvSource) Name() string { return "env:" + e.key }

// Resolve looks up the environment variable.
func (e *EnvSource) Resolve(_ context.Context) (string, error) {
	value, ok := os.LookupEnv(e.key)
	if !ok {
		return "", fmt.Errorf("secret: missing required environment variable: %s", e.key)
	}
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: %s is set but blank", ErrEmptyCredential, e.key)
	}
	return value, nil
}

// Ensure EnvSource implements Source
var _ Source = (*EnvSource)(nil)
