package mcptools

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"git.home.luguber.info/inful/craftbook/internal/logfields"
	"git.home.luguber.info/inful/craftbook/internal/metrics"
	"git.home.luguber.info/inful/craftbook/internal/registry"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// SearchTool handles the recipe_search MCP tool.
type SearchTool struct {
	registry RegistrySource
	recorder metrics.Recorder
}

// NewSearchTool creates a SearchTool. A nil recorder disables metrics.
func NewSearchTool(reg RegistrySource, rec metrics.Recorder) *SearchTool {
	return &SearchTool{registry: reg, recorder: metrics.OrNoop(rec)}
}

// Definition returns the MCP tool definition for recipe_search.
func (t *SearchTool) Definition() mcp.Tool {
	return mcp.NewTool("recipe_search",
		mcp.WithDescription(
			"Find recipes that make an item (mode=output) or use it (mode=ingredient). "+
				"Queries may be loose names (\"oak planks\"), identifiers (minecraft:oak_planks) or tags (#minecraft:planks).",
		),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Item name, identifier or #tag"),
		),
		mcp.WithString("mode",
			mcp.Description("output (default) or ingredient"),
			mcp.Enum("output", "ingredient"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Max results (default: %d, max: %d)", defaultSearchLimit, maxSearchLimit)),
		),
	)
}

// Handle processes the recipe_search tool call.
func (t *SearchTool) Handle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")
	slog.Debug("MCP tool call", logfields.Tool("recipe_search"), logfields.Query(query))
	if strings.TrimSpace(query) == "" {
		return mcp.NewToolResultError("'query' is required"), nil
	}
	mode, err := registry.ParseMode(req.GetString("mode", ""))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid mode %q: use output or ingredient", req.GetString("mode", ""))), nil
	}
	limit := min(max(intArg(req, "limit", defaultSearchLimit), 1), maxSearchLimit)

	reg, errResult := current(t.registry)
	if errResult != nil {
		return errResult, nil
	}

	start := time.Now()
	list, err := reg.Search(mode, query)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	t.recorder.ObserveQuery(string(mode), time.Since(start), len(list))

	if len(list) == 0 {
		return mcp.NewToolResultText(fmt.Sprintf("No recipes found (%s %q).", mode, query)), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d recipes (%s %q):\n\n", len(list), mode, query)
	for i, r := range list {
		if i == limit {
			fmt.Fprintf(&b, "... %d more\n", len(list)-limit)
			break
		}
		fmt.Fprintf(&b, "%d. %s (%s) makes %d x %s", i+1, r.Key, r.Kind(), r.Result.Count, r.Result.Item)
		if v := reg.EffectiveVersion(r); v != "" {
			fmt.Fprintf(&b, " [%s]", v)
		}
		b.WriteByte('\n')
	}
	return mcp.NewToolResultText(b.String()), nil
}
