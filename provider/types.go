package provider

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors.
var (
	// ErrNotFound maps the provider's 404 responses. The file-write
	// path branches on it to choose create versus update.
	ErrNotFound = errors.New("provider: resource not found")

	// ErrNoToken is returned when the credential cannot be resolved.
	ErrNoToken = errors.New("provider: GITHUB_TOKEN not set")
)

// File is a repository file's content and identity.
type File struct {
	Path    string
	SHA     string
	Content []byte // decoded from the transport encoding, not validated as text
}

// Repository is the projection of repository metadata the tools expose.
type Repository struct {
	Name          string
	FullName      string
	URL           string
	Description   string
	Private       bool
	DefaultBranch string
	Stars         int
	Forks         int
	OpenIssues    int
	Language      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Branch is a repository branch head.
type Branch struct {
	Name      string
	Protected bool
	SHA       string
}

// Ref is a created git reference.
type Ref struct {
	Ref string
	SHA string
}

// PullRequest is an opened pull request.
type PullRequest struct {
	Number int
	URL    string
	Title  string
}

// CodeMatch is a single code search result.
type CodeMatch struct {
	Repository string
	Path       string
	URL        string
}

// CodeSearch carries search matches along with the provider-reported
// total, which may exceed len(Matches).
type CodeSearch struct {
	Total   int
	Matches []CodeMatch
}

// Quota is a snapshot of the provider's own core rate limit.
type Quota struct {
	Limit     int
	Remaining int
	Reset     time.Time
}

// API is the set of GitHub operations the tool handlers depend on.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: a 404 from the provider is reported as ErrNotFound; all
//   other provider failures pass through opaquely.
// - Repo arguments are full names in owner/name form.
type API interface {
	GetFile(ctx context.Context, repo, path, branch string) (*File, error)
	CreateFile(ctx context.Context, repo, path, branch, message string, content []byte) error
	UpdateFile(ctx context.Context, repo, path, branch, message string, content []byte, sha string) error
	ListRepositories(ctx context.Context, org string) ([]Repository, error)
	GetRepository(ctx context.Context, repo string) (*Repository, error)
	ListBranches(ctx context.Context, repo string) ([]Branch, error)
	CreateBranch(ctx context.Context, repo, branch, from string) (*Ref, error)
	SearchCode(ctx context.Context, query string, limit int) (*CodeSearch, error)
	CreatePullRequest(ctx context.Context, repo, title, head, base, body string) (*PullRequest, error)
	AuthenticatedUser(ctx context.Context) (string, error)
	Quota(ctx context.Context) (*Quota, error)
}

// Source yields the shared API handle.
type Source interface {
	// Client returns the handle, constructing it on first use.
	Client(ctx context.Context) (API, error)
}
