// Package provider adapts the hosted GitHub REST API for the tool
// handlers.
//
// It exposes a narrow, domain-typed API interface over go-github so
// handlers never touch the REST client directly, plus a Lazy source
// that constructs the underlying client once, on first use, from a
// credential resolved out of the process environment. A missing
// credential is therefore a first-use error, not a startup error.
package provider
