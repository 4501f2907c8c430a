// Package cache provides a time-bounded in-memory cache for file reads.
//
// It provides a Cache interface with a memory implementation and a
// fixed-TTL policy. Entries expire lazily: a stale entry is removed
// when it is next looked up, never by a background sweep. Only file
// content reads are cached, keyed by (repository, branch, path).
package cache
