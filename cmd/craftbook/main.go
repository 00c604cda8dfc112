package main

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/craftbook/cmd/craftbook/commands"
	derrors "git.home.luguber.info/inful/craftbook/internal/errors"
	"git.home.luguber.info/inful/craftbook/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("craftbook"),
		kong.Description("Crafting recipe knowledge base: search, browse and serve recipes."),
		kong.Vars{"version": version.String()},
		kong.UsageOnError(),
	)

	if err := ctx.Run(&commands.Global{Out: os.Stdout}, &cli); err != nil {
		derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
