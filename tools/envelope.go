package tools

import (
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// errorEnvelope is the uniform failure shape returned by every tool.
type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// errorResult shapes a failure into the {success:false, error} envelope.
// The envelope is the contract across the process boundary; the MCP
// IsError flag is set as well for transports that inspect it.
func errorResult(err error) *mcp.CallToolResult {
	payload, merr := json.Marshal(errorEnvelope{Error: err.Error()})
	if merr != nil {
		return mcp.NewToolResultError(err.Error())
	}

	result := mcp.NewToolResultText(string(payload))
	result.IsError = true
	return result
}

// jsonResult shapes a success value into a JSON text result.
func jsonResult(v any) *mcp.CallToolResult {
	payload, err := json.Marshal(v)
	if err != nil {
		return errorResult(fmt.Errorf("encode result: %w", err))
	}
	return mcp.NewToolResultText(string(payload))
}
