package games

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/jamesprial/gameshelf/internal/safety"
	"github.com/jamesprial/gameshelf/internal/tools"
)

const (
	toolNameList   = "games_list"
	toolNameAdd    = "games_add"
	toolNameDelete = "games_delete"
)

// DestructiveTools lists game tool names that require confirmation before
// execution.
var DestructiveTools = []string{toolNameDelete}

// GameTools returns the tool registrations for the games collection.
// Deletion is gated by filter (applied to the game's title) and by confirm.
func GameTools(mgr GameManager, filter *safety.Filter, confirm *safety.ConfirmationTracker, audit *safety.AuditLogger) []tools.Registration {
	return []tools.Registration{
		toolGamesList(mgr, audit),
		toolGamesAdd(mgr, audit),
		toolGamesDelete(mgr, filter, confirm, audit),
	}
}

// FormatGame renders a single game as a human-readable block.
func FormatGame(g Game) string {
	return fmt.Sprintf("%s\n  Platform: %s\n  ID: %s", g.Title, JoinPlatforms(g.Platform), g.ID)
}

// FormatGames renders games separated by blank lines, or "No games found."
func FormatGames(games []Game) string {
	if len(games) == 0 {
		return "No games found."
	}
	var sb strings.Builder
	for i, g := range games {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(FormatGame(g))
	}
	return sb.String()
}

func toolGamesList(mgr GameManager, audit *safety.AuditLogger) tools.Registration {
	tool := mcp.NewTool(toolNameList,
		mcp.WithDescription("List every game in the collection with its id, title, and platforms."),
		mcp.WithReadOnlyHintAnnotation(true),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		games, err := mgr.List(ctx)
		if err != nil {
			tools.LogAudit(audit, toolNameList, nil, tools.AuditResult(err), start)
			return tools.ErrorResult(err.Error()), nil
		}

		result := "ok"
		if len(games) == 0 {
			result = "ok: empty"
		}
		tools.LogAudit(audit, toolNameList, nil, result, start)
		return mcp.NewToolResultText(FormatGames(games)), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func toolGamesAdd(mgr GameManager, audit *safety.AuditLogger) tools.Registration {
	tool := mcp.NewTool(toolNameAdd,
		mcp.WithDescription("Add a game to the collection. The platform argument is a comma separated list, split on every comma without trimming."),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Game title"),
		),
		mcp.WithString("platform",
			mcp.Required(),
			mcp.Description("Platforms, comma separated (e.g. \"PC,PS5\")"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		title := req.GetString("title", "")
		platformRaw := req.GetString("platform", "")
		params := map[string]any{
			"title":    title,
			"platform": platformRaw,
		}

		game, err := mgr.Add(ctx, NewAddGameInput(title, platformRaw))
		if err != nil {
			tools.LogAudit(audit, toolNameAdd, params, tools.AuditResult(err), start)
			return tools.ErrorResult(err.Error()), nil
		}

		tools.LogAudit(audit, toolNameAdd, params, "ok", start)
		return mcp.NewToolResultText("game added:\n" + FormatGame(game)), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}

func toolGamesDelete(mgr GameManager, filter *safety.Filter, confirm *safety.ConfirmationTracker, audit *safety.AuditLogger) tools.Registration {
	tool := mcp.NewTool(toolNameDelete,
		mcp.WithDescription("Permanently delete a game by id. The first call returns a confirmation token; call again with confirmation_token to proceed."),
		mcp.WithDestructiveHintAnnotation(true),
		mcp.WithString("id",
			mcp.Required(),
			mcp.Description("Game id"),
		),
		mcp.WithString(tools.ConfirmationTokenParam,
			mcp.Description("Confirmation token returned by a prior call"),
		),
	)

	handler := func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		start := time.Now()

		id := req.GetString("id", "")
		token := req.GetString(tools.ConfirmationTokenParam, "")
		params := map[string]any{"id": id}

		fail := func(err error) (*mcp.CallToolResult, error) {
			tools.LogAudit(audit, toolNameDelete, params, tools.AuditResult(err), start)
			return tools.ErrorResult(err.Error()), nil
		}

		if id == "" {
			return fail(errors.New("id is required"))
		}

		games, err := mgr.List(ctx)
		if err != nil {
			return fail(err)
		}
		game, ok := Find(games, id)
		if !ok {
			return fail(fmt.Errorf("game %q: %w", id, ErrNotFound))
		}
		params["title"] = game.Title

		if !filter.IsAllowed(game.Title) {
			return fail(fmt.Errorf("game %q (%s) is protected by the safety filter", id, game.Title))
		}

		if confirm.NeedsConfirmation(toolNameDelete) && !confirm.Confirm(token, toolNameDelete, id) {
			desc := fmt.Sprintf("This will permanently delete %q (%s). This cannot be undone.", game.Title, JoinPlatforms(game.Platform))
			tools.LogAudit(audit, toolNameDelete, params, "confirmation requested", start)
			return tools.ConfirmPrompt(confirm, toolNameDelete, id, desc), nil
		}

		deleted, err := mgr.Delete(ctx, id)
		if err != nil {
			return fail(err)
		}

		tools.LogAudit(audit, toolNameDelete, params, "ok", start)
		return mcp.NewToolResultText(fmt.Sprintf("game %q (%s) deleted successfully", deleted.ID, deleted.Title)), nil
	}

	return tools.Registration{Tool: tool, Handler: server.ToolHandlerFunc(handler)}
}
