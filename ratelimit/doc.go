// Package ratelimit provides a per-tool sliding-window rate limiter.
//
// Each tool name gets an independent quota: a fixed ceiling of calls
// within a fixed trailing window. The limiter keeps the timestamps of
// admitted calls and prunes entries older than the window on every
// check, so a tool that exhausts its quota admits calls again once the
// oldest retained call ages out. Counts live in memory only and reset
// on process restart.
package ratelimit
