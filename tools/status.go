package tools

import (
	"context"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/Product-Data-Cloud/github-mcp-remote/observe"
)

// toolQuota reports one tool's sliding-window usage.
type toolQuota struct {
	Used      int `json:"used"`
	Remaining int `json:"remaining"`
	Limit     int `json:"limit"`
}

// providerQuota mirrors the provider's own core rate limit.
type providerQuota struct {
	Limit     int    `json:"limit"`
	Remaining int    `json:"remaining"`
	Reset     string `json:"reset"`
}

type connectionStatusResult struct {
	Success       bool                 `json:"success"`
	Username      string               `json:"username"`
	ProviderQuota providerQuota        `json:"provider_rate_limit"`
	ToolQuotas    map[string]toolQuota `json:"tool_rate_limits"`
	CacheEntries  int                  `json:"cache_entries"`
}

func (r *Registry) connectionStatusTool() toolDef {
	return toolDef{
		meta: observe.ToolMeta{Name: ToolConnectionStatus, ReadOnly: true},
		def: mcp.NewTool(ToolConnectionStatus,
			mcp.WithDescription("Report the authenticated user, provider rate limits, per-tool quotas, and cache size"),
		),
		run: r.connectionStatus,
	}
}

// connectionStatus is itself rate limited, so its own admission shows up
// in the quota report it returns.
func (r *Registry) connectionStatus(ctx context.Context, req mcp.CallToolRequest) (any, error) {
	api, err := r.api(ctx)
	if err != nil {
		return nil, err
	}

	login, err := api.AuthenticatedUser(ctx)
	if err != nil {
		return nil, err
	}
	quota, err := api.Quota(ctx)
	if err != nil {
		return nil, err
	}

	quotas := make(map[string]toolQuota)
	for tool, used := range r.limiter.Snapshot() {
		remaining := r.limiter.Limit() - used
		if remaining < 0 {
			remaining = 0
		}
		quotas[tool] = toolQuota{
			Used:      used,
			Remaining: remaining,
			Limit:     r.limiter.Limit(),
		}
	}

	return connectionStatusResult{
		Success:  true,
		Username: login,
		ProviderQuota: providerQuota{
			Limit:     quota.Limit,
			Remaining: quota.Remaining,
			Reset:     quota.Reset.UTC().Format(time.RFC3339),
		},
		ToolQuotas:   quotas,
		CacheEntries: r.cache.Len(),
	}, nil
}
