package tools

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Product-Data-Cloud/github-mcp-remote/provider"
)

// fakeAPI implements provider.API with canned responses per method.
// Unset funcs fail the test if called.
type fakeAPI struct {
	t *testing.T

	getFile           func(repo, path, branch string) (*provider.File, error)
	createFile        func(repo, path, branch, message string, content []byte) error
	updateFile        func(repo, path, branch, message string, content []byte, sha string) error
	listRepositories  func(org string) ([]provider.Repository, error)
	getRepository     func(repo string) (*provider.Repository, error)
	listBranches      func(repo string) ([]provider.Branch, error)
	createBranch      func(repo, branch, from string) (*provider.Ref, error)
	searchCode        func(query string, limit int) (*provider.CodeSearch, error)
	createPullRequest func(repo, title, head, base, body string) (*provider.PullRequest, error)
	authenticatedUser func() (string, error)
	quota             func() (*provider.Quota, error)

	calls map[string]int
}

func newFakeAPI(t *testing.T) *fakeAPI {
	return &fakeAPI{t: t, calls: make(map[string]int)}
}

func (f *fakeAPI) record(method string) {
	f.calls[method]++
}

func (f *fakeAPI) GetFile(_ context.Context, repo, path, branch string) (*provider.File, error) {
	f.record("GetFile")
	if f.getFile == nil {
		f.t.Fatal("unexpected GetFile call")
	}
	return f.getFile(repo, path, branch)
}

func (f *fakeAPI) CreateFile(_ context.Context, repo, path, branch, message string, content []byte) error {
	f.record("CreateFile")
	if f.createFile == nil {
		f.t.Fatal("unexpected CreateFile call")
	}
	return f.createFile(repo, path, branch, message, content)
}

func (f *fakeAPI) UpdateFile(_ context.Context, repo, path, branch, message string, content []byte, sha string) error {
	f.record("UpdateFile")
	if f.updateFile == nil {
		f.t.Fatal("unexpected UpdateFile call")
	}
	return f.updateFile(repo, path, branch, message, content, sha)
}

func (f *fakeAPI) ListRepositories(_ context.Context, org string) ([]provider.Repository, error) {
	f.record("ListRepositories")
	if f.listRepositories == nil {
		f.t.Fatal("unexpected ListRepositories call")
	}
	return f.listRepositories(org)
}

func (f *fakeAPI) GetRepository(_ context.Context, repo string) (*provider.Repository, error) {
	f.record("GetRepository")
	if f.getRepository == nil {
		f.t.Fatal("unexpected GetRepository call")
	}
	return f.getRepository(repo)
}

func (f *fakeAPI) ListBranches(_ context.Context, repo string) ([]provider.Branch, error) {
	f.record("ListBranches")
	if f.listBranches == nil {
		f.t.Fatal("unexpected ListBranches call")
	}
	return f.listBranches(repo)
}

func (f *fakeAPI) CreateBranch(_ context.Context, repo, branch, from string) (*provider.Ref, error) {
	f.record("CreateBranch")
	if f.createBranch == nil {
		f.t.Fatal("unexpected CreateBranch call")
	}
	return f.createBranch(repo, branch, from)
}

func (f *fakeAPI) SearchCode(_ context.Context, query string, limit int) (*provider.CodeSearch, error) {
	f.record("SearchCode")
	if f.searchCode == nil {
		f.t.Fatal("unexpected SearchCode call")
	}
	return f.searchCode(query, limit)
}

func (f *fakeAPI) CreatePullRequest(_ context.Context, repo, title, head, base, body string) (*provider.PullRequest, error) {
	f.record("CreatePullRequest")
	if f.createPullRequest == nil {
		f.t.Fatal("unexpected CreatePullRequest call")
	}
	return f.createPullRequest(repo, title, head, base, body)
}

func (f *fakeAPI) AuthenticatedUser(_ context.Context) (string, error) {
	f.record("AuthenticatedUser")
	if f.authenticatedUser == nil {
		f.t.Fatal("unexpected AuthenticatedUser call")
	}
	return f.authenticatedUser()
}

func (f *fakeAPI) Quota(_ context.Context) (*provider.Quota, error) {
	f.record("Quota")
	if f.quota == nil {
		f.t.Fatal("unexpected Quota call")
	}
	return f.quota()
}

var _ provider.API = (*fakeAPI)(nil)

// fixedSource hands out a fixed API without lazy construction.
type fixedSource struct {
	api provider.API
	err error
}

func (s fixedSource) Client(context.Context) (provider.API, error) {
	return s.api, s.err
}

// newTestRegistry builds a Registry over the fake with default collaborators.
func newTestRegistry(t *testing.T, api provider.API) *Registry {
	t.Helper()
	reg, err := NewRegistry(Config{
		Provider: fixedSource{api: api},
	})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}
	return reg
}

// callTool invokes the registered handler for name and decodes the JSON
// envelope into a generic map.
func callTool(t *testing.T, reg *Registry, name string, args map[string]any) (map[string]any, bool) {
	t.Helper()

	var def *toolDef
	for _, td := range reg.tools() {
		if td.meta.Name == name {
			td := td
			def = &td
			break
		}
	}
	if def == nil {
		t.Fatalf("tool %q not registered", name)
	}

	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args

	result, err := reg.handler(def.meta, def.run)(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned transport error: %v", err)
	}
	if len(result.Content) != 1 {
		t.Fatalf("len(result.Content) = %d, want 1", len(result.Content))
	}
	text, ok := result.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("content type = %T, want TextContent", result.Content[0])
	}

	var envelope map[string]any
	if err := json.Unmarshal([]byte(text.Text), &envelope); err != nil {
		t.Fatalf("result is not JSON: %v", err)
	}
	success, _ := envelope["success"].(bool)
	if success == result.IsError {
		t.Errorf("success = %v but IsError = %v", success, result.IsError)
	}
	return envelope, success
}

// testQuota is a plausible provider quota for status tests.
func testQuota() *provider.Quota {
	return &provider.Quota{
		Limit:     5000,
		Remaining: 4990,
		Reset:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}
