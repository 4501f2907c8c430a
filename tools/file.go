package tools

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Product-Data-Cloud/github-mcp-remote/cache"
	"github.com/Product-Data-Cloud/github-mcp-remote/observe"
	"github.com/Product-Data-Cloud/github-mcp-remote/provider"
)

// MaxFileBytes caps the content accepted by create_or_update_file.
const MaxFileBytes = 1 << 20

// ErrContentTooLarge is returned when file content exceeds MaxFileBytes.
var ErrContentTooLarge = errors.New("tools: content exceeds 1 MiB")

// writeFileResult reports the outcome of create_or_update_file.
type writeFileResult struct {
	Success bool   `json:"success"`
	Action  string `json:"action"` // "created" or "updated"
	Repo    string `json:"repo"`
	Path    string `json:"path"`
	Branch  string `json:"branch"`
}

func (r *Registry) writeFileTool() toolDef {
	return toolDef{
		meta: observe.ToolMeta{Name: ToolWriteFile},
		def: mcp.NewTool(ToolWriteFile,
			mcp.WithDescription("Create a new file or update an existing one in a GitHub repository"),
			mcp.WithString("repo", mcp.Required(), mcp.Description("Repository in owner/name form")),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path within the repository")),
			mcp.WithString("content", mcp.Required(), mcp.Description("Full file content, UTF-8, at most 1 MiB")),
			mcp.WithString("message", mcp.Required(), mcp.Description("Commit message")),
			mcp.WithString("branch", mcp.Description("Target branch"), mcp.DefaultString("main")),
		),
		run: r.writeFile,
	}
}

// writeFile reads the current blob to decide between create and update.
// A racing write between the read and the update surfaces as the
// provider's precondition failure; it is reported, never retried.
func (r *Registry) writeFile(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	repo, err := req.RequireString("repo")
	if err != nil {
		return nil, err
	}
	path, err := req.RequireString("path")
	if err != nil {
		return nil, err
	}
	content, err := req.RequireString("content")
	if err != nil {
		return nil, err
	}
	message, err := req.RequireString("message")
	if err != nil {
		return nil, err
	}
	branch := req.GetString("branch", "main")

	if len(content) > MaxFileBytes {
		return nil, fmt.Errorf("%w: got %d bytes", ErrContentTooLarge, len(content))
	}

	api, err := r.api(ctx)
	if err != nil {
		return nil, err
	}

	var action string
	existing, err := api.GetFile(ctx, repo, path, branch)
	switch {
	case err == nil:
		if err := api.UpdateFile(ctx, repo, path, branch, message, []byte(content), existing.SHA); err != nil {
			return nil, err
		}
		action = "updated"
	case errors.Is(err, provider.ErrNotFound):
		if err := api.CreateFile(ctx, repo, path, branch, message, []byte(content)); err != nil {
			return nil, err
		}
		action = "created"
	default:
		return nil, err
	}

	// Invalidate rather than refresh: the next read fetches the commit
	// the provider actually recorded.
	if r.cachePolicy.ShouldCache() {
		_ = r.cache.Delete(ctx, cache.FileKey(repo, branch, path))
	}

	return writeFileResult{
		Success: true,
		Action:  action,
		Repo:    repo,
		Path:    path,
		Branch:  branch,
	}, nil
}

// fileContentsResult carries a decoded file and whether it came from cache.
type fileContentsResult struct {
	Success bool   `json:"success"`
	Repo    string `json:"repo"`
	Path    string `json:"path"`
	Branch  string `json:"branch"`
	Content string `json:"content"`
	Cached  bool   `json:"cached"`
}

func (r *Registry) readFileTool() toolDef {
	return toolDef{
		meta: observe.ToolMeta{Name: ToolReadFile, ReadOnly: true},
		def: mcp.NewTool(ToolReadFile,
			mcp.WithDescription("Read the contents of a file from a GitHub repository"),
			mcp.WithString("repo", mcp.Required(), mcp.Description("Repository in owner/name form")),
			mcp.WithString("path", mcp.Required(), mcp.Description("File path within the repository")),
			mcp.WithString("branch", mcp.Description("Branch to read from"), mcp.DefaultString("main")),
		),
		run: r.readFile,
	}
}

func (r *Registry) readFile(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	repo, err := req.RequireString("repo")
	if err != nil {
		return nil, err
	}
	path, err := req.RequireString("path")
	if err != nil {
		return nil, err
	}
	branch := req.GetString("branch", "main")

	meta := observe.ToolMeta{Name: ToolReadFile, ReadOnly: true}
	key := cache.FileKey(repo, branch, path)

	if r.cachePolicy.ShouldCache() {
		if content, ok := r.cache.Get(ctx, key); ok {
			r.metrics.RecordCacheLookup(ctx, meta, true)
			return fileContentsResult{
				Success: true,
				Repo:    repo,
				Path:    path,
				Branch:  branch,
				Content: string(content),
				Cached:  true,
			}, nil
		}
		r.metrics.RecordCacheLookup(ctx, meta, false)
	}

	api, err := r.api(ctx)
	if err != nil {
		return nil, err
	}
	file, err := api.GetFile(ctx, repo, path, branch)
	if err != nil {
		return nil, err
	}
	if !utf8.Valid(file.Content) {
		return nil, fmt.Errorf("tools: %s is not valid UTF-8 text", path)
	}

	// Cached only on full success, after decoding and validation.
	if r.cachePolicy.ShouldCache() {
		_ = r.cache.Set(ctx, key, file.Content, r.cachePolicy.TTL)
	}

	return fileContentsResult{
		Success: true,
		Repo:    repo,
		Path:    path,
		Branch:  branch,
		Content: string(file.Content),
		Cached:  false,
	}, nil
}
