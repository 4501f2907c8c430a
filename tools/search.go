package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Product-Data-Cloud/github-mcp-remote/observe"
)

// SearchResultLimit caps the matches returned by search_code.
const SearchResultLimit = 10

type searchMatch struct {
	Repository string `json:"repository"`
	Path       string `json:"path"`
	URL        string `json:"url"`
}

type searchCodeResult struct {
	Success    bool          `json:"success"`
	Query      string        `json:"query"` // effective query sent upstream
	TotalCount int           `json:"total_count"`
	Count      int           `json:"count"`
	Matches    []searchMatch `json:"matches"`
}

func (r *Registry) searchCodeTool() toolDef {
	return toolDef{
		meta: observe.ToolMeta{Name: ToolSearchCode, ReadOnly: true},
		def: mcp.NewTool(ToolSearchCode,
			mcp.WithDescription("Search code across the organization or within one repository"),
			mcp.WithString("query", mcp.Required(), mcp.Description("Code search query")),
			mcp.WithString("repo", mcp.Description("Restrict the search to one repository, owner/name form")),
		),
		run: r.searchCode,
	}
}

// searchCode scopes the query to one repository when given, and to the
// default organization otherwise, so a bare query never searches all of
// the provider.
func (r *Registry) searchCode(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return nil, err
	}

	var scoped string
	if repo := req.GetString("repo", ""); repo != "" {
		scoped = fmt.Sprintf("%s repo:%s", query, repo)
	} else {
		scoped = fmt.Sprintf("%s org:%s", query, r.defaultOrg)
	}

	api, err := r.api(ctx)
	if err != nil {
		return nil, err
	}
	found, err := api.SearchCode(ctx, scoped, SearchResultLimit)
	if err != nil {
		return nil, err
	}

	matches := make([]searchMatch, 0, len(found.Matches))
	for _, m := range found.Matches {
		matches = append(matches, searchMatch{
			Repository: m.Repository,
			Path:       m.Path,
			URL:        m.URL,
		})
	}

	return searchCodeResult{
		Success:    true,
		Query:      scoped,
		TotalCount: found.Total,
		Count:      len(matches),
		Matches:    matches,
	}, nil
}
