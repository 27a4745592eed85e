// Package tools provides shared helper utilities for MCP tool handlers.
package tools

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/jamesprial/gameshelf/internal/safety"
)

// ConfirmationTokenParam is the argument name destructive tools read the
// confirmation token from.
const ConfirmationTokenParam = "confirmation_token"

// JSONResult marshals v to indented JSON and returns an mcp.CallToolResult.
func JSONResult(v any) *mcp.CallToolResult {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("error marshaling result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// ErrorResult returns an mcp.CallToolResult that describes an error condition.
// The result is flagged with IsError so clients can tell it apart from data.
func ErrorResult(msg string) *mcp.CallToolResult {
	res := mcp.NewToolResultText(fmt.Sprintf("error: %s", msg))
	res.IsError = true
	return res
}

// AuditResult maps a handler error to the result string recorded in the
// audit log.
func AuditResult(err error) string {
	if err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}

// LogAudit logs a tool invocation to the audit logger, silently ignoring a nil logger.
func LogAudit(audit *safety.AuditLogger, toolName string, params map[string]any, result string, start time.Time) {
	if audit == nil {
		return
	}
	_ = audit.Log(safety.AuditEntry{
		Timestamp: start,
		Tool:      toolName,
		Params:    params,
		Result:    result,
		Duration:  time.Since(start),
	})
}

// ConfirmPrompt issues a confirmation request and returns the prompt result.
func ConfirmPrompt(confirm *safety.ConfirmationTracker, toolName, resource, description string) *mcp.CallToolResult {
	token := confirm.RequestConfirmation(toolName, resource, description)
	return mcp.NewToolResultText(fmt.Sprintf(
		"Confirmation required for %s on %q.\n\n%s\n\nTo proceed, call %s again with %s=%q.",
		toolName, resource, description, toolName, ConfirmationTokenParam, token,
	))
}
