package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"git.home.luguber.info/inful/craftbook/internal/metrics"
	"git.home.luguber.info/inful/craftbook/internal/version"
)

// NewServer creates the MCP server with every recipe tool registered.
func NewServer(reg RegistrySource, sessions SessionStore, rec metrics.Recorder) *server.MCPServer {
	s := server.NewMCPServer(
		"craftbook",
		version.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(instructions),
	)

	getTool := NewGetTool(reg)
	s.AddTool(getTool.Definition(), getTool.Handle)

	searchTool := NewSearchTool(reg, rec)
	s.AddTool(searchTool.Definition(), searchTool.Handle)

	startTool := NewBrowseStartTool(reg, sessions)
	s.AddTool(startTool.Definition(), startTool.Handle)

	actionTool := NewBrowseActionTool(sessions)
	s.AddTool(actionTool.Definition(), actionTool.Handle)

	return s
}

const instructions = `Craftbook answers "what makes X" and "what uses X" for crafting recipes.
Use recipe_search for one-off lists and recipe_get for details of one recipe.
To explore, start a session with recipe_browse_start and move through it with
recipe_browse_action using the slots listed under "Actions".`
