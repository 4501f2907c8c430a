package tools

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/Product-Data-Cloud/github-mcp-remote/provider"
	"github.com/Product-Data-Cloud/github-mcp-remote/ratelimit"
)

func TestNewRegistry_RequiresProvider(t *testing.T) {
	if _, err := NewRegistry(Config{}); err == nil {
		t.Error("NewRegistry() without Provider should error")
	}
}

func TestRegistry_ExposesNineTools(t *testing.T) {
	reg := newTestRegistry(t, newFakeAPI(t))

	want := map[string]bool{
		ToolWriteFile:         true,
		ToolReadFile:          true,
		ToolListRepositories:  true,
		ToolRepositoryInfo:    true,
		ToolListBranches:      true,
		ToolCreateBranch:      true,
		ToolSearchCode:        true,
		ToolCreatePullRequest: true,
		ToolConnectionStatus:  true,
	}

	defs := reg.tools()
	if len(defs) != len(want) {
		t.Fatalf("len(tools) = %d, want %d", len(defs), len(want))
	}
	for _, td := range defs {
		if !want[td.meta.Name] {
			t.Errorf("unexpected tool %q", td.meta.Name)
		}
		delete(want, td.meta.Name)
	}
	for name := range want {
		t.Errorf("tool %q missing", name)
	}
}

func TestHandler_RateLimitExhaustion(t *testing.T) {
	api := newFakeAPI(t)
	api.listBranches = func(repo string) ([]provider.Branch, error) {
		return []provider.Branch{{Name: "main"}}, nil
	}

	limiter := ratelimit.New(ratelimit.Config{Window: time.Hour, Limit: 2})
	reg, err := NewRegistry(Config{
		Provider: fixedSource{api: api},
		Limiter:  limiter,
	})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	args := map[string]any{"repo": "acme/widgets"}
	for i := 0; i < 2; i++ {
		if _, success := callTool(t, reg, ToolListBranches, args); !success {
			t.Fatalf("call %d should be admitted", i+1)
		}
	}

	envelope, success := callTool(t, reg, ToolListBranches, args)
	if success {
		t.Fatal("third call should be rejected")
	}
	msg, _ := envelope["error"].(string)
	if !strings.Contains(msg, "too many calls") || !strings.Contains(msg, ToolListBranches) {
		t.Errorf("error = %q, want rate-limit message naming the tool", msg)
	}

	// The rejected call never reached the provider and was not recorded.
	if api.calls["ListBranches"] != 2 {
		t.Errorf("provider calls = %d, want 2", api.calls["ListBranches"])
	}
	if got := limiter.Usage(ToolListBranches); got != 2 {
		t.Errorf("Usage = %d, want 2", got)
	}
}

func TestHandler_ToolsLimitedIndependently(t *testing.T) {
	api := newFakeAPI(t)
	api.listBranches = func(repo string) ([]provider.Branch, error) { return nil, nil }
	api.getRepository = func(repo string) (*provider.Repository, error) {
		return &provider.Repository{Name: "widgets", FullName: repo}, nil
	}

	reg, err := NewRegistry(Config{
		Provider: fixedSource{api: api},
		Limiter:  ratelimit.New(ratelimit.Config{Window: time.Hour, Limit: 1}),
	})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	args := map[string]any{"repo": "acme/widgets"}
	if _, success := callTool(t, reg, ToolListBranches, args); !success {
		t.Fatal("first list_branches should be admitted")
	}
	if _, success := callTool(t, reg, ToolListBranches, args); success {
		t.Fatal("second list_branches should be rejected")
	}
	if _, success := callTool(t, reg, ToolRepositoryInfo, args); !success {
		t.Error("get_repository_info has its own quota and should be admitted")
	}
}

func TestHandler_ProviderSourceFailureIsEnveloped(t *testing.T) {
	reg, err := NewRegistry(Config{
		Provider: fixedSource{err: errors.New("provider: GITHUB_TOKEN not set")},
	})
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	envelope, success := callTool(t, reg, ToolListBranches, map[string]any{"repo": "acme/widgets"})
	if success {
		t.Fatal("missing credential should fail")
	}
	if msg, _ := envelope["error"].(string); !strings.Contains(msg, "GITHUB_TOKEN") {
		t.Errorf("error = %q, want credential failure", msg)
	}
}

func TestHandler_MissingRequiredParamIsEnveloped(t *testing.T) {
	reg := newTestRegistry(t, newFakeAPI(t)) // provider must not be reached

	envelope, success := callTool(t, reg, ToolReadFile, map[string]any{"repo": "acme/widgets"})
	if success {
		t.Fatal("missing path should fail")
	}
	if msg, _ := envelope["error"].(string); !strings.Contains(msg, "path") {
		t.Errorf("error = %q, want it to name the missing parameter", msg)
	}
}
