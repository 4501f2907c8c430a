package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Product-Data-Cloud/github-mcp-remote/observe"
)

// repoSummary is the per-repository projection returned by list_repositories.
type repoSummary struct {
	Name        string `json:"name"`
	FullName    string `json:"full_name"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Private     bool   `json:"private"`
}

type listRepositoriesResult struct {
	Success      bool          `json:"success"`
	Organization string        `json:"organization"`
	Count        int           `json:"count"`
	Repositories []repoSummary `json:"repositories"`
}

func (r *Registry) listRepositoriesTool() toolDef {
	return toolDef{
		meta: observe.ToolMeta{Name: ToolListRepositories, ReadOnly: true},
		def: mcp.NewTool(ToolListRepositories,
			mcp.WithDescription("List all repositories in a GitHub organization"),
			mcp.WithString("org", mcp.Description("Organization login"), mcp.DefaultString(DefaultOrganization)),
		),
		run: r.listRepositories,
	}
}

func (r *Registry) listRepositories(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	org := req.GetString("org", r.defaultOrg)

	api, err := r.api(ctx)
	if err != nil {
		return nil, err
	}
	repos, err := api.ListRepositories(ctx, org)
	if err != nil {
		return nil, err
	}

	summaries := make([]repoSummary, 0, len(repos))
	for _, repo := range repos {
		summaries = append(summaries, repoSummary{
			Name:        repo.Name,
			FullName:    repo.FullName,
			URL:         repo.URL,
			Description: repo.Description,
			Private:     repo.Private,
		})
	}

	return listRepositoriesResult{
		Success:      true,
		Organization: org,
		Count:        len(summaries),
		Repositories: summaries,
	}, nil
}

// repositoryInfoResult is the full metadata projection for one repository.
type repositoryInfoResult struct {
	Success       bool   `json:"success"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	URL           string `json:"url"`
	Description   string `json:"description"`
	Private       bool   `json:"private"`
	DefaultBranch string `json:"default_branch"`
	Stars         int    `json:"stars"`
	Forks         int    `json:"forks"`
	OpenIssues    int    `json:"open_issues"`
	Language      string `json:"language"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func (r *Registry) repositoryInfoTool() toolDef {
	return toolDef{
		meta: observe.ToolMeta{Name: ToolRepositoryInfo, ReadOnly: true},
		def: mcp.NewTool(ToolRepositoryInfo,
			mcp.WithDescription("Get metadata for a GitHub repository"),
			mcp.WithString("repo", mcp.Required(), mcp.Description("Repository in owner/name form")),
		),
		run: r.repositoryInfo,
	}
}

func (r *Registry) repositoryInfo(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	repo, err := req.RequireString("repo")
	if err != nil {
		return nil, err
	}

	api, err := r.api(ctx)
	if err != nil {
		return nil, err
	}
	info, err := api.GetRepository(ctx, repo)
	if err != nil {
		return nil, err
	}

	return repositoryInfoResult{
		Success:       true,
		Name:          info.Name,
		FullName:      info.FullName,
		URL:           info.URL,
		Description:   info.Description,
		Private:       info.Private,
		DefaultBranch: info.DefaultBranch,
		Stars:         info.Stars,
		Forks:         info.Forks,
		OpenIssues:    info.OpenIssues,
		Language:      info.Language,
		CreatedAt:     info.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     info.UpdatedAt.UTC().Format(time.RFC3339),
	}, nil
}
