// Package tools implements the GitHub operations exposed over MCP.
//
// Nine tools share one skeleton: a per-tool rate-limit check, then the
// provider call, then result shaping into a uniform JSON envelope of
// {success, ...fields} or {success: false, error}. No failure ever
// escapes a handler to the transport; the rate limiter records only
// admitted calls, and the file cache is written only after a fully
// successful fetch.
package tools
