package mcptools

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"git.home.luguber.info/inful/craftbook/internal/logfields"
)

// GetTool handles the recipe_get MCP tool.
type GetTool struct {
	registry RegistrySource
}

// NewGetTool creates a GetTool.
func NewGetTool(reg RegistrySource) *GetTool {
	return &GetTool{registry: reg}
}

// Definition returns the MCP tool definition for recipe_get.
func (t *GetTool) Definition() mcp.Tool {
	return mcp.NewTool("recipe_get",
		mcp.WithDescription("Show one recipe by key: result, apparatus, ingredients, version and notes."),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Recipe key, e.g. torch or iron_ingot_from_blasting_raw_iron"),
		),
	)
}

// Handle processes the recipe_get tool call.
func (t *GetTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	key := strings.TrimSpace(req.GetString("key", ""))
	slog.Debug("MCP tool call", logfields.Tool("recipe_get"), logfields.RecipeKey(key))
	if key == "" {
		return mcp.NewToolResultError("'key' is required"), nil
	}
	reg, errResult := current(t.registry)
	if errResult != nil {
		return errResult, nil
	}

	r, ok := reg.Get(key)
	if !ok {
		return mcp.NewToolResultError("no recipe with key " + key), nil
	}
	var b strings.Builder
	writeRecipe(&b, reg, r)
	return mcp.NewToolResultText(b.String()), nil
}
