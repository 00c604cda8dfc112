package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"git.home.luguber.info/inful/craftbook/internal/config"
	derrors "git.home.luguber.info/inful/craftbook/internal/errors"
	"git.home.luguber.info/inful/craftbook/internal/registry"
	"git.home.luguber.info/inful/craftbook/internal/server/responses"
)

// SearchCmd implements the 'search' command.
type SearchCmd struct {
	Mode  string `arg:"" enum:"output,makes,ingredient,uses" help:"output lists recipes making the item, ingredient lists recipes using it"`
	Query string `arg:"" help:"Item name, identifier or #tag"`
	JSON  bool   `name:"json" help:"Print results as JSON"`
}

func (s *SearchCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	return RunSearch(context.Background(), g, cfg, s.Mode, s.Query, s.JSON)
}

func RunSearch(ctx context.Context, g *Global, cfg *config.Config, rawMode, query string, asJSON bool) error {
	mode, err := registry.ParseMode(rawMode)
	if err != nil {
		return err
	}
	reg, err := registry.LoadFiles(ctx, cfg.Data.SourcePaths(), registry.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	list, err := reg.Search(mode, query)
	if err != nil {
		return derrors.WrapError(err, derrors.CategoryValidation, "invalid query").WithContext("query", query)
	}

	w := out(g)
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(responses.SearchResponse{
			Query:   query,
			Mode:    string(mode),
			Count:   len(list),
			Recipes: responses.Summaries(reg, list),
		})
	}

	if len(list) == 0 {
		_, _ = fmt.Fprintf(w, "No recipes found (%s %q)\n", mode, query)
		return nil
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "KEY\tKIND\tRESULT\tVERSION")
	for _, r := range list {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%d x %s\t%s\n", r.Key, r.Kind(), r.Result.Count, r.Result.Item, reg.EffectiveVersion(r))
	}
	return tw.Flush()
}
