package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v68/github"
)

// Client implements API over the go-github REST client.
type Client struct {
	gh *github.Client
}

// NewClient creates a client authenticated with the given bearer token.
func NewClient(token string) *Client {
	return &Client{gh: github.NewClient(nil).WithAuthToken(token)}
}

// newClientFrom wraps an already-configured go-github client (tests).
func newClientFrom(gh *github.Client) *Client {
	return &Client{gh: gh}
}

// splitRepo splits a full repository name into owner and name.
func splitRepo(repo string) (owner, name string, err error) {
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" {
		return "", "", fmt.Errorf("provider: repository must be in owner/name form, got %q", repo)
	}
	return owner, name, nil
}

// notFound reports whether the provider answered 404.
func notFound(resp *github.Response) bool {
	return resp != nil && resp.StatusCode == http.StatusNotFound
}

// GetFile fetches a file's content and blob identity at path on branch.
// The content is decoded from the transport encoding but not validated
// as text; callers that need UTF-8 check it themselves.
func (c *Client) GetFile(ctx context.Context, repo, path, branch string) (*File, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	opts := &github.RepositoryContentGetOptions{Ref: branch}
	fc, _, resp, err := c.gh.Repositories.GetContents(ctx, owner, name, path, opts)
	if err != nil {
		if notFound(resp) {
			return nil, fmt.Errorf("%w: %s@%s: %s", ErrNotFound, repo, branch, path)
		}
		return nil, err
	}
	if fc == nil {
		return nil, fmt.Errorf("provider: %s is a directory, not a file", path)
	}

	content, err := fc.GetContent()
	if err != nil {
		return nil, fmt.Errorf("provider: decode %s: %w", path, err)
	}

	return &File{Path: fc.GetPath(), SHA: fc.GetSHA(), Content: []byte(content)}, nil
}

// CreateFile creates a new file at path on branch.
func (c *Client) CreateFile(ctx context.Context, repo, path, branch, message string, content []byte) error {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return err
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
		Branch:  github.String(branch),
	}
	_, _, err = c.gh.Repositories.CreateFile(ctx, owner, name, path, opts)
	return err
}

// UpdateFile replaces the file at path on branch, identified by the
// prior content's blob SHA. A stale SHA surfaces as the provider's own
// precondition failure; nothing is retried.
func (c *Client) UpdateFile(ctx context.Context, repo, path, branch, message string, content []byte, sha string) error {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return err
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
		Branch:  github.String(branch),
		SHA:     github.String(sha),
	}
	_, _, err = c.gh.Repositories.UpdateFile(ctx, owner, name, path, opts)
	return err
}

// ListRepositories enumerates every repository in org, paginating to
// exhaustion.
func (c *Client) ListRepositories(ctx context.Context, org string) ([]Repository, error) {
	opts := &github.RepositoryListByOrgOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var out []Repository
	for {
		repos, resp, err := c.gh.Repositories.ListByOrg(ctx, org, opts)
		if err != nil {
			if notFound(resp) {
				return nil, fmt.Errorf("%w: organization %s", ErrNotFound, org)
			}
			return nil, err
		}
		for _, r := range repos {
			out = append(out, projectRepository(r))
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// GetRepository fetches one repository's metadata.
func (c *Client) GetRepository(ctx context.Context, repo string) (*Repository, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	r, resp, err := c.gh.Repositories.Get(ctx, owner, name)
	if err != nil {
		if notFound(resp) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, repo)
		}
		return nil, err
	}
	projected := projectRepository(r)
	return &projected, nil
}

func projectRepository(r *github.Repository) Repository {
	return Repository{
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		URL:           r.GetHTMLURL(),
		Description:   r.GetDescription(),
		Private:       r.GetPrivate(),
		DefaultBranch: r.GetDefaultBranch(),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		OpenIssues:    r.GetOpenIssuesCount(),
		Language:      r.GetLanguage(),
		CreatedAt:     r.GetCreatedAt().Time,
		UpdatedAt:     r.GetUpdatedAt().Time,
	}
}

// ListBranches enumerates every branch in repo, paginating to exhaustion.
func (c *Client) ListBranches(ctx context.Context, repo string) ([]Branch, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	opts := &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var out []Branch
	for {
		branches, resp, err := c.gh.Repositories.ListBranches(ctx, owner, name, opts)
		if err != nil {
			if notFound(resp) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, repo)
			}
			return nil, err
		}
		for _, b := range branches {
			out = append(out, Branch{
				Name:      b.GetName(),
				Protected: b.GetProtected(),
				SHA:       b.GetCommit().GetSHA(),
			})
		}
		if resp.NextPage == 0 {
			return out, nil
		}
		opts.Page = resp.NextPage
	}
}

// CreateBranch creates refs/heads/<branch> pointing at the head commit
// of the from branch. It fails if from does not exist or the target ref
// already exists.
func (c *Client) CreateBranch(ctx context.Context, repo, branch, from string) (*Ref, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	src, resp, err := c.gh.Git.GetRef(ctx, owner, name, "heads/"+from)
	if err != nil {
		if notFound(resp) {
			return nil, fmt.Errorf("%w: branch %s in %s", ErrNotFound, from, repo)
		}
		return nil, err
	}

	created, _, err := c.gh.Git.CreateRef(ctx, owner, name, &github.Reference{
		Ref:    github.String("refs/heads/" + branch),
		Object: &github.GitObject{SHA: src.GetObject().SHA},
	})
	if err != nil {
		return nil, err
	}

	return &Ref{Ref: created.GetRef(), SHA: created.GetObject().GetSHA()}, nil
}

// SearchCode runs a code search and returns at most limit matches along
// with the provider-reported total.
func (c *Client) SearchCode(ctx context.Context, query string, limit int) (*CodeSearch, error) {
	opts := &github.SearchOptions{
		ListOptions: github.ListOptions{PerPage: limit},
	}

	result, _, err := c.gh.Search.Code(ctx, query, opts)
	if err != nil {
		return nil, err
	}

	matches := make([]CodeMatch, 0, limit)
	for _, item := range result.CodeResults {
		if len(matches) >= limit {
			break
		}
		matches = append(matches, CodeMatch{
			Repository: item.GetRepository().GetFullName(),
			Path:       item.GetPath(),
			URL:        item.GetHTMLURL(),
		})
	}

	return &CodeSearch{Total: result.GetTotal(), Matches: matches}, nil
}

// CreatePullRequest opens a pull request from head into base.
func (c *Client) CreatePullRequest(ctx context.Context, repo, title, head, base, body string) (*PullRequest, error) {
	owner, name, err := splitRepo(repo)
	if err != nil {
		return nil, err
	}

	pr, _, err := c.gh.PullRequests.Create(ctx, owner, name, &github.NewPullRequest{
		Title: github.String(title),
		Head:  github.String(head),
		Base:  github.String(base),
		Body:  github.String(body),
	})
	if err != nil {
		return nil, err
	}

	return &PullRequest{Number: pr.GetNumber(), URL: pr.GetHTMLURL(), Title: pr.GetTitle()}, nil
}

// AuthenticatedUser returns the login of the token's identity.
func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	user, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return "", err
	}
	return user.GetLogin(), nil
}

// Quota returns the provider's core rate-limit snapshot.
func (c *Client) Quota(ctx context.Context) (*Quota, error) {
	limits, _, err := c.gh.RateLimit.Get(ctx)
	if err != nil {
		return nil, err
	}

	core := limits.GetCore()
	return &Quota{
		Limit:     core.Limit,
		Remaining: core.Remaining,
		Reset:     core.Reset.Time,
	}, nil
}

// Ensure Client implements API
var _ API = (*Client)(nil)
