// Package secret provides credential sources for the GitHub provider.
//
// The server authenticates with a single static bearer token. Sources
// resolve that token on demand so that a missing credential surfaces as
// an error on first provider use rather than at startup.
package secret
