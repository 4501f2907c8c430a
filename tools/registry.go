package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/Product-Data-Cloud/github-mcp-remote/cache"
	"github.com/Product-Data-Cloud/github-mcp-remote/observe"
	"github.com/Product-Data-Cloud/github-mcp-remote/provider"
	"github.com/Product-Data-Cloud/github-mcp-remote/ratelimit"
)

// Tool names as registered with the transport.
const (
	ToolWriteFile         = "create_or_update_file"
	ToolReadFile          = "get_file_contents"
	ToolListRepositories  = "list_repositories"
	ToolRepositoryInfo    = "get_repository_info"
	ToolListBranches      = "list_branches"
	ToolCreateBranch      = "create_branch"
	ToolSearchCode        = "search_code"
	ToolCreatePullRequest = "create_pull_request"
	ToolConnectionStatus  = "connection_status"
)

// DefaultOrganization scopes repository listing and code search when the
// caller names no other owner.
const DefaultOrganization = "Product-Data-Cloud"

// Config configures a tool Registry. Provider is required; every other
// field has a working default.
type Config struct {
	// Provider yields the GitHub API handle, constructed lazily.
	Provider provider.Source

	// Limiter admits calls per tool name. Default: 100 calls per hour.
	Limiter *ratelimit.SlidingWindow

	// Cache stores file read results. Default: in-memory.
	Cache cache.Cache

	// CachePolicy controls the file-read cache. Default: 5 minute TTL.
	// Set to &cache.Policy{} to disable caching.
	CachePolicy *cache.Policy

	// Middleware wraps every handler with tracing, metrics, and logging.
	// Default: logging only.
	Middleware *observe.Middleware

	// Logger backs the default middleware when Middleware is unset.
	Logger observe.Logger

	// DefaultOrg overrides DefaultOrganization.
	DefaultOrg string
}

// Registry holds the nine tool handlers and their shared collaborators.
type Registry struct {
	provider    provider.Source
	limiter     *ratelimit.SlidingWindow
	cache       cache.Cache
	cachePolicy cache.Policy
	middleware  *observe.Middleware
	metrics     observe.Metrics
	defaultOrg  string
}

// NewRegistry creates a Registry, applying defaults for unset Config fields.
func NewRegistry(cfg Config) (*Registry, error) {
	if cfg.Provider == nil {
		return nil, fmt.Errorf("tools: Config.Provider is required")
	}

	if cfg.Limiter == nil {
		cfg.Limiter = ratelimit.New(ratelimit.Config{})
	}
	if cfg.Cache == nil {
		cfg.Cache = cache.NewMemoryCache()
	}
	policy := cache.DefaultPolicy()
	if cfg.CachePolicy != nil {
		policy = *cfg.CachePolicy
	}
	if cfg.Logger == nil {
		cfg.Logger = observe.NewLogger("info")
	}
	if cfg.Middleware == nil {
		cfg.Middleware = observe.NewMiddleware(observe.NoopTracer(), observe.NoopMetrics(), cfg.Logger)
	}
	org := cfg.DefaultOrg
	if org == "" {
		org = DefaultOrganization
	}

	return &Registry{
		provider:    cfg.Provider,
		limiter:     cfg.Limiter,
		cache:       cfg.Cache,
		cachePolicy: policy,
		middleware:  cfg.Middleware,
		metrics:     cfg.Middleware.Metrics(),
		defaultOrg:  org,
	}, nil
}

// runFunc executes one tool call after admission.
type runFunc func(ctx context.Context, req mcp.CallToolRequest) (any, error)

// toolDef pairs a tool's transport definition with its handler.
type toolDef struct {
	meta observe.ToolMeta
	def  mcp.Tool
	run  runFunc
}

func (r *Registry) tools() []toolDef {
	return []toolDef{
		r.writeFileTool(),
		r.readFileTool(),
		r.listRepositoriesTool(),
		r.repositoryInfoTool(),
		r.listBranchesTool(),
		r.createBranchTool(),
		r.searchCodeTool(),
		r.createPullRequestTool(),
		r.connectionStatusTool(),
	}
}

// Register adds every tool to the MCP server.
func (r *Registry) Register(s *server.MCPServer) {
	for _, t := range r.tools() {
		s.AddTool(t.def, r.handler(t.meta, t.run))
	}
}

// handler adapts a runFunc to the transport, threading the rate-limit
// check and the observability middleware around it. The limit check
// runs inside the wrapped function so rejections are traced, counted,
// and logged like any other failure; it runs before the provider is
// touched, so a rejected call never consumes upstream quota.
func (r *Registry) handler(meta observe.ToolMeta, run runFunc) server.ToolHandlerFunc {
	exec := r.middleware.Wrap(func(ctx context.Context, meta observe.ToolMeta, input any) (any, error) {
		if !r.limiter.Allow(meta.Name) {
			return nil, fmt.Errorf("%w: %s is limited to %d calls per %s",
				ratelimit.ErrRateLimited, meta.Name, r.limiter.Limit(), r.limiter.Window())
		}
		return run(ctx, input.(mcp.CallToolRequest))
	})

	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		out, err := exec(ctx, meta, req)
		if err != nil {
			return errorResult(err), nil
		}
		return jsonResult(out), nil
	}
}

// api resolves the shared provider handle.
func (r *Registry) api(ctx context.Context) (provider.API, error) {
	return r.provider.Client(ctx)
}
