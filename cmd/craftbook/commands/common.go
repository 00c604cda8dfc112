// Package commands implements the craftbook command line.
package commands

import (
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/craftbook/internal/config"
)

// Global is passed to every subcommand.
type Global struct {
	// Out receives command output. Logs always go to stderr.
	Out io.Writer
}

// CLI definition & global flags - used by commands that need access to root config.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"craftbook.yaml" env:"CRAFTBOOK_CONFIG"`
	DataDir string           `short:"d" name:"data-dir" help:"Override data.dir from the configuration"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Serve    ServeCmd    `cmd:"" help:"Serve the recipe API over HTTP"`
	MCP      MCPCmd      `cmd:"" name:"mcp" help:"Serve recipe tools over MCP on stdio"`
	Validate ValidateCmd `cmd:"" help:"Load the source documents and report problems"`
	Search   SearchCmd   `cmd:"" help:"List recipes that make or use an item"`
	Show     ShowCmd     `cmd:"" help:"Show one recipe"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	return nil
}

// LoadConfig reads the configured file. A missing file at the default path
// falls back to built-in defaults so that the tool works in a data directory
// without any setup.
func (c *CLI) LoadConfig() (*config.Config, error) {
	var cfg *config.Config
	if _, err := os.Stat(c.Config); errors.Is(err, fs.ErrNotExist) && c.Config == config.DefaultPath {
		slog.Debug("No configuration file, using defaults", slog.String("path", c.Config))
		cfg = config.Default()
	} else {
		cfg, err = config.Load(c.Config)
		if err != nil {
			return nil, err
		}
	}
	if c.DataDir != "" {
		cfg.Data.Dir = c.DataDir
	}
	c.configureLogging(cfg)
	return cfg, nil
}

// configureLogging replaces the bootstrap logger with one honoring the
// configured level and format. --verbose always wins.
func (c *CLI) configureLogging(cfg *config.Config) {
	level := cfg.Logging.Level.SlogLevel()
	if c.Verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if cfg.Logging.Format == config.LogFormatJSON {
		h = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		h = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(h))
}

func out(g *Global) io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}
