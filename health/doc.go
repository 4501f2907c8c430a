// Package health provides health checks for the GitHub tool server.
//
// Checkers report the status of the server's collaborators (the GitHub
// provider) and its in-memory structures (rate limiter, file cache).
// An aggregator combines them for the HTTP liveness and readiness
// probes served alongside the MCP transport.
package health
