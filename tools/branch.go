package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Product-Data-Cloud/github-mcp-remote/observe"
)

type branchSummary struct {
	Name      string `json:"name"`
	SHA       string `json:"sha"`
	Protected bool   `json:"protected"`
}

type listBranchesResult struct {
	Success  bool            `json:"success"`
	Repo     string          `json:"repo"`
	Count    int             `json:"count"`
	Branches []branchSummary `json:"branches"`
}

func (r *Registry) listBranchesTool() toolDef {
	return toolDef{
		meta: observe.ToolMeta{Name: ToolListBranches, ReadOnly: true},
		def: mcp.NewTool(ToolListBranches,
			mcp.WithDescription("List branches of a GitHub repository"),
			mcp.WithString("repo", mcp.Required(), mcp.Description("Repository in owner/name form")),
		),
		run: r.listBranches,
	}
}

func (r *Registry) listBranches(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	repo, err := req.RequireString("repo")
	if err != nil {
		return nil, err
	}

	api, err := r.api(ctx)
	if err != nil {
		return nil, err
	}
	branches, err := api.ListBranches(ctx, repo)
	if err != nil {
		return nil, err
	}

	summaries := make([]branchSummary, 0, len(branches))
	for _, b := range branches {
		summaries = append(summaries, branchSummary{
			Name:      b.Name,
			SHA:       b.SHA,
			Protected: b.Protected,
		})
	}

	return listBranchesResult{
		Success:  true,
		Repo:     repo,
		Count:    len(summaries),
		Branches: summaries,
	}, nil
}

type createBranchResult struct {
	Success bool   `json:"success"`
	Repo    string `json:"repo"`
	Branch  string `json:"branch"`
	From    string `json:"from_branch"`
	SHA     string `json:"sha"`
}

func (r *Registry) createBranchTool() toolDef {
	return toolDef{
		meta: observe.ToolMeta{Name: ToolCreateBranch},
		def: mcp.NewTool(ToolCreateBranch,
			mcp.WithDescription("Create a new branch in a GitHub repository"),
			mcp.WithString("repo", mcp.Required(), mcp.Description("Repository in owner/name form")),
			mcp.WithString("branch", mcp.Required(), mcp.Description("Name of the branch to create")),
			mcp.WithString("from_branch", mcp.Description("Branch to fork from"), mcp.DefaultString("main")),
		),
		run: r.createBranch,
	}
}

func (r *Registry) createBranch(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	repo, err := req.RequireString("repo")
	if err != nil {
		return nil, err
	}
	branch, err := req.RequireString("branch")
	if err != nil {
		return nil, err
	}
	from := req.GetString("from_branch", "main")

	api, err := r.api(ctx)
	if err != nil {
		return nil, err
	}
	ref, err := api.CreateBranch(ctx, repo, branch, from)
	if err != nil {
		return nil, err
	}

	return createBranchResult{
		Success: true,
		Repo:    repo,
		Branch:  branch,
		From:    from,
		SHA:     ref.SHA,
	}, nil
}
