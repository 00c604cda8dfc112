// Package mcptools provides MCP tool handlers over the recipe registry.
//
// Each tool is a struct with its dependencies injected via constructor:
// Definition() returns the mcp.Tool schema and Handle() processes a call.
// Problems with the caller's input are reported as tool errors, not Go
// errors, so the client sees them.
package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"git.home.luguber.info/inful/craftbook/internal/browse"
	"git.home.luguber.info/inful/craftbook/internal/daemon"
	"git.home.luguber.info/inful/craftbook/internal/markdown"
	"git.home.luguber.info/inful/craftbook/internal/recipe"
	"git.home.luguber.info/inful/craftbook/internal/registry"
)

// RegistrySource yields the live registry. *daemon.Holder satisfies it.
type RegistrySource interface {
	Current() *registry.Registry
}

// SessionStore is the session surface the browse tools need.
// *daemon.SessionManager satisfies it.
type SessionStore interface {
	Start(ctx context.Context, reg *registry.Registry, list []*recipe.Recipe, page int, origin string) (daemon.SessionView, error)
	Invoke(ctx context.Context, id string, slot browse.Slot) (bool, daemon.SessionView, error)
}

// intArg extracts an integer argument from a tool request, returning
// defaultVal if the key is missing or not a number (JSON numbers are float64).
func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

func current(src RegistrySource) (*registry.Registry, *mcp.CallToolResult) {
	reg := src.Current()
	if reg == nil {
		return nil, mcp.NewToolResultError("recipe registry is not loaded yet")
	}
	return reg, nil
}

// writeRecipe renders r as plain text.
func writeRecipe(b *strings.Builder, reg *registry.Registry, r *recipe.Recipe) {
	fmt.Fprintf(b, "%s (%s) makes %d x %s\n", r.Key, r.Kind(), r.Result.Count, r.Result.Item)
	fmt.Fprintf(b, "Apparatus: %s\n", r.TableItem())

	switch v := r.Variant.(type) {
	case *recipe.ShapedRecipe:
		b.WriteString("Pattern:\n")
		for _, row := range v.Pattern {
			fmt.Fprintf(b, "  |%s|\n", row)
		}
		for _, sym := range v.KeyOrder {
			fmt.Fprintf(b, "  %c = %s\n", sym, joinIngredients(v.Keys[sym]))
		}
	case *recipe.SmeltingRecipe:
		fmt.Fprintf(b, "Cooking: %s, %d ticks\n", v.Type, v.CookingTime)
		fmt.Fprintf(b, "Ingredients: %s\n", joinIngredients(r.Ingredients()))
	default:
		fmt.Fprintf(b, "Ingredients: %s\n", joinIngredients(r.Ingredients()))
	}

	if r.Experience > 0 {
		fmt.Fprintf(b, "Experience: %g\n", r.Experience)
	}
	if v := reg.EffectiveVersion(r); v != "" {
		fmt.Fprintf(b, "Version: %s\n", v)
	}
	if r.Removed() {
		fmt.Fprintf(b, "Removed in: %s\n", r.RemovedVersion)
	}
	if reg.Unreleased(r) {
		fmt.Fprintf(b, "Unreleased (feature flag %s)\n", r.FeatureFlag)
	}
	if r.Notes != "" {
		fmt.Fprintf(b, "Notes: %s\n", markdown.PlainText(r.Notes))
	}
}

func joinIngredients(ings []recipe.Ingredient) string {
	parts := make([]string, len(ings))
	for i, ing := range ings {
		parts[i] = ing.String()
	}
	return strings.Join(parts, ", ")
}

// formatPage renders a session page with its enabled actions.
func formatPage(view daemon.SessionView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Session %s, recipe %d of %d\n\n", view.ID, view.Page.Index+1, view.Page.Total)
	writeRecipe(&b, view.Registry, view.Page.Recipe)

	b.WriteString("\nActions:\n")
	for _, a := range view.Page.Actions {
		if a.Enabled {
			fmt.Fprintf(&b, "  %s: %s\n", a.Slot, a.Description)
		}
	}
	return b.String()
}
