package graphql

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jamesprial/gameshelf/internal/safety"
	"github.com/jamesprial/gameshelf/internal/tools"
)

const toolNameGraphQLQuery = "graphql_query"

// GraphQLTools returns the tool registrations for the raw GraphQL escape
// hatch. It exposes a single "graphql_query" tool that executes an arbitrary
// operation against the games API.
func GraphQLTools(client Client, audit *safety.AuditLogger) []tools.Registration {
	return []tools.Registration{
		toolGraphQLQuery(client, audit),
	}
}

// toolGraphQLQuery constructs the graphql_query Registration.
func toolGraphQLQuery(client Client, audit *safety.AuditLogger) tools.Registration {
	tool := mcp.NewTool(toolNameGraphQLQuery,
		mcp.WithDescription("Execute an arbitrary GraphQL operation against the games API. Use when direct API access is needed beyond the games_* tools."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("A GraphQL document containing exactly one query or mutation."),
		),
		mcp.WithString("variables",
			mcp.Description("Optional JSON object string of variables to pass with the operation."),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		query := req.GetString("query", "")
		variablesStr := req.GetString("variables", "")

		params := map[string]any{
			"query":     query,
			"variables": variablesStr,
		}

		// Syntax errors are caught locally and never reach the server.
		op, err := ParseOperation(query)
		if err != nil {
			tools.LogAudit(audit, toolNameGraphQLQuery, params, tools.AuditResult(err), start)
			return tools.ErrorResult(err.Error()), nil
		}

		var parsedVars map[string]any
		if variablesStr != "" {
			if err := json.Unmarshal([]byte(variablesStr), &parsedVars); err != nil {
				errMsg := fmt.Sprintf("parse variables JSON: %v", err)
				tools.LogAudit(audit, toolNameGraphQLQuery, params, "error: "+errMsg, start)
				return tools.ErrorResult(errMsg), nil
			}
		}

		data, err := client.Execute(ctx, op, parsedVars)
		if err != nil {
			tools.LogAudit(audit, toolNameGraphQLQuery, params, tools.AuditResult(err), start)
			return tools.ErrorResult(err.Error()), nil
		}

		// Re-decode so tools.JSONResult pretty-prints with consistent indentation.
		var parsed any
		if err := json.Unmarshal(data, &parsed); err != nil {
			tools.LogAudit(audit, toolNameGraphQLQuery, params, tools.AuditResult(err), start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolNameGraphQLQuery, params, "ok", start)
		return tools.JSONResult(parsed), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
