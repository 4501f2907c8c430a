package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Product-Data-Cloud/github-mcp-remote/observe"
)

type createPullRequestResult struct {
	Success bool   `json:"success"`
	Repo    string `json:"repo"`
	Number  int    `json:"number"`
	URL     string `json:"url"`
	Title   string `json:"title"`
}

func (r *Registry) createPullRequestTool() toolDef {
	return toolDef{
		meta: observe.ToolMeta{Name: ToolCreatePullRequest},
		def: mcp.NewTool(ToolCreatePullRequest,
			mcp.WithDescription("Open a pull request in a GitHub repository"),
			mcp.WithString("repo", mcp.Required(), mcp.Description("Repository in owner/name form")),
			mcp.WithString("title", mcp.Required(), mcp.Description("Pull request title")),
			mcp.WithString("head", mcp.Required(), mcp.Description("Branch containing the changes")),
			mcp.WithString("base", mcp.Description("Branch to merge into"), mcp.DefaultString("main")),
			mcp.WithString("body", mcp.Description("Pull request description")),
		),
		run: r.createPullRequest,
	}
}

func (r *Registry) createPullRequest(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	repo, err := req.RequireString("repo")
	if err != nil {
		return nil, err
	}
	title, err := req.RequireString("title")
	if err != nil {
		return nil, err
	}
	head, err := req.RequireString("head")
	if err != nil {
		return nil, err
	}
	base := req.GetString("base", "main")
	body := req.GetString("body", "")

	api, err := r.api(ctx)
	if err != nil {
		return nil, err
	}
	pr, err := api.CreatePullRequest(ctx, repo, title, head, base, body)
	if err != nil {
		return nil, err
	}

	return createPullRequestResult{
		Success: true,
		Repo:    repo,
		Number:  pr.Number,
		URL:     pr.URL,
		Title:   pr.Title,
	}, nil
}
