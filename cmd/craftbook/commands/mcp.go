package commands

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"git.home.luguber.info/inful/craftbook/internal/config"
	"git.home.luguber.info/inful/craftbook/internal/daemon"
	"git.home.luguber.info/inful/craftbook/internal/logfields"
	"git.home.luguber.info/inful/craftbook/internal/mcptools"
)

// MCPCmd implements the 'mcp' command. Stdout carries the protocol, so all
// logging stays on stderr.
type MCPCmd struct{}

func (m *MCPCmd) Run(_ *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	return RunMCP(context.Background(), cfg)
}

// RunMCP starts the daemon without the HTTP API and serves MCP tools on
// stdio until the client disconnects.
func RunMCP(ctx context.Context, cfg *config.Config) error {
	d, err := daemon.New(cfg, daemon.Options{})
	if err != nil {
		return err
	}
	if err := d.Start(ctx); err != nil {
		_ = d.Stop(context.Background())
		return err
	}
	defer func() {
		if err := d.Stop(context.Background()); err != nil {
			slog.Error("Failed to stop daemon", logfields.Error(err))
		}
	}()

	s := mcptools.NewServer(d.Holder(), d.Sessions(), nil)
	slog.Info("Serving MCP on stdio", logfields.Count(d.Holder().Current().Len()))
	return server.ServeStdio(s)
}
