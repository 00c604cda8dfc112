package mcptools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"git.home.luguber.info/inful/craftbook/internal/browse"
	"git.home.luguber.info/inful/craftbook/internal/logfields"
	"git.home.luguber.info/inful/craftbook/internal/registry"
)

// BrowseStartTool handles the recipe_browse_start MCP tool.
type BrowseStartTool struct {
	registry RegistrySource
	sessions SessionStore
}

// NewBrowseStartTool creates a BrowseStartTool.
func NewBrowseStartTool(reg RegistrySource, sessions SessionStore) *BrowseStartTool {
	return &BrowseStartTool{registry: reg, sessions: sessions}
}

// Definition returns the MCP tool definition for recipe_browse_start.
func (t *BrowseStartTool) Definition() mcp.Tool {
	return mcp.NewTool("recipe_browse_start",
		mcp.WithDescription(
			"Start a browsing session over the recipes matching a query. The result shows the first "+
				"recipe and the actions available; follow them with recipe_browse_action.",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Item name, identifier or #tag"),
		),
		mcp.WithString("mode",
			mcp.Description("output (default) or ingredient"),
			mcp.Enum("output", "ingredient"),
		),
		mcp.WithNumber("page",
			mcp.Description("Zero-based starting position (default: 0)"),
		),
	)
}

// Handle processes the recipe_browse_start tool call.
func (t *BrowseStartTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	slog.Debug("MCP tool call", logfields.Tool("recipe_browse_start"), logfields.Query(query))
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}
	mode, err := registry.ParseMode(req.GetString("mode", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid mode %q: use output or ingredient", req.GetString("mode", ""))), nil
	}
	reg, errResult := current(t.registry)
	if errResult != nil {
		return errResult, nil
	}

	list, err := reg.Search(mode, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if len(list) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("no recipes found (%s %q)", mode, query)), nil
	}

	view, err := t.sessions.Start(ctx, reg, list, intArg(req, "page", 0), string(mode)+":"+query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot start session: %v", err)), nil
	}
	return mcp.NewToolResultText(formatPage(view)), nil
}

// BrowseActionTool handles the recipe_browse_action MCP tool.
type BrowseActionTool struct {
	sessions SessionStore
}

// NewBrowseActionTool creates a BrowseActionTool.
func NewBrowseActionTool(sessions SessionStore) *BrowseActionTool {
	return &BrowseActionTool{sessions: sessions}
}

// Definition returns the MCP tool definition for recipe_browse_action.
func (t *BrowseActionTool) Definition() mcp.Tool {
	slots := make([]string, 0, len(browse.Slots()))
	for _, s := range browse.Slots() {
		slots = append(slots, s.String())
	}
	return mcp.NewTool("recipe_browse_action",
		mcp.WithDescription("Perform one of the actions listed on the current page of a browsing session."),
		mcp.WithString("session_id",
			mcp.Required(),
			mcp.Description("Session id returned by recipe_browse_start"),
		),
		mcp.WithString("slot",
			mcp.Required(),
			mcp.Description("Action slot, e.g. next, uses, ingredient1"),
			mcp.Enum(slots...),
		),
	)
}

// Handle processes the recipe_browse_action tool call.
func (t *BrowseActionTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("session_id", "")
	if id == "" {
		return mcp.NewToolResultError("'session_id' is required"), nil
	}
	name := req.GetString("slot", "")
	slog.Debug("MCP tool call", logfields.Tool("recipe_browse_action"), logfields.SessionID(id), logfields.Slot(name))
	slot, ok := browse.ParseSlot(name)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unknown slot %q", name)), nil
	}

	applied, view, err := t.sessions.Invoke(ctx, id, slot)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("session %s: %v", id, err)), nil
	}
	text := formatPage(view)
	if !applied {
		text = fmt.Sprintf("Action %s is not available on this page; nothing changed.\n\n%s", name, text)
	}
	return mcp.NewToolResultText(text), nil
}
