package cache

import "fmt"

// FileKey builds the cache key for a file content read.
//
// The key is the composite (repository, branch, path) tuple. It is not
// hashed: the components are already bounded, and keeping them legible
// helps when inspecting a running process.
func FileKey(repo, branch, path string) string {
	return fmt.Sprintf("file:%s:%s:%s", repo, branch, path)
}
