package tools

import (
	"testing"

	"github.com/Product-Data-Cloud/github-mcp-remote/provider"
)

func TestConnectionStatus_ReportsQuotasAndCache(t *testing.T) {
	api := newFakeAPI(t)
	api.getFile = func(repo, path, branch string) (*provider.File, error) {
		return &provider.File{Content: []byte("body")}, nil
	}
	api.authenticatedUser = func() (string, error) { return "octocat", nil }
	api.quota = func() (*provider.Quota, error) { return testQuota(), nil }
	reg := newTestRegistry(t, api)

	// Warm the cache and the read-file quota.
	callTool(t, reg, ToolReadFile, map[string]any{"repo": "acme/widgets", "path": "README.md"})

	envelope, success := callTool(t, reg, ToolConnectionStatus, nil)
	if !success {
		t.Fatalf("envelope = %v, want success", envelope)
	}
	if envelope["username"] != "octocat" {
		t.Errorf("username = %v, want octocat", envelope["username"])
	}
	if envelope["cache_entries"] != float64(1) {
		t.Errorf("cache_entries = %v, want 1", envelope["cache_entries"])
	}

	providerLimit, _ := envelope["provider_rate_limit"].(map[string]any)
	if providerLimit["remaining"] != float64(4990) {
		t.Errorf("provider remaining = %v, want 4990", providerLimit["remaining"])
	}
	if providerLimit["reset"] != "2025-06-01T12:00:00Z" {
		t.Errorf("reset = %v, want RFC3339", providerLimit["reset"])
	}

	quotas, _ := envelope["tool_rate_limits"].(map[string]any)
	readQuota, _ := quotas[ToolReadFile].(map[string]any)
	if readQuota["used"] != float64(1) {
		t.Errorf("read-file used = %v, want 1", readQuota["used"])
	}
	// connection_status was admitted before it snapshotted, so it counts itself.
	statusQuota, _ := quotas[ToolConnectionStatus].(map[string]any)
	if statusQuota["used"] != float64(1) {
		t.Errorf("connection_status used = %v, want 1", statusQuota["used"])
	}
}

func TestConnectionStatus_UserFailurePassesThrough(t *testing.T) {
	api := newFakeAPI(t)
	api.authenticatedUser = func() (string, error) { return "", provider.ErrNoToken }
	reg := newTestRegistry(t, api)

	if _, success := callTool(t, reg, ToolConnectionStatus, nil); success {
		t.Error("credential failure should be enveloped as an error")
	}
}
