package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"git.home.luguber.info/inful/craftbook/internal/config"
	derrors "git.home.luguber.info/inful/craftbook/internal/errors"
	"git.home.luguber.info/inful/craftbook/internal/markdown"
	"git.home.luguber.info/inful/craftbook/internal/registry"
	"git.home.luguber.info/inful/craftbook/internal/server/responses"
)

// ShowCmd implements the 'show' command.
type ShowCmd struct {
	Key  string `arg:"" help:"Recipe key"`
	JSON bool   `name:"json" help:"Print the recipe as JSON"`
}

func (s *ShowCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	return RunShow(context.Background(), g, cfg, s.Key, s.JSON)
}

func RunShow(ctx context.Context, g *Global, cfg *config.Config, key string, asJSON bool) error {
	reg, err := registry.LoadFiles(ctx, cfg.Data.SourcePaths(), registry.WithLogger(slog.Default()))
	if err != nil {
		return err
	}
	r, ok := reg.Get(key)
	if !ok {
		return derrors.NotFound("recipe", key)
	}

	view := responses.Recipe(reg, r)
	w := out(g)
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(view)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", view.Key, view.Kind)
	fmt.Fprintf(&b, "  result:      %d x %s\n", view.Result.Count, view.Result.Item)
	fmt.Fprintf(&b, "  apparatus:   %s\n", view.Apparatus)
	if view.Type != "" {
		fmt.Fprintf(&b, "  type:        %s\n", view.Type)
	}
	for i, row := range view.Pattern {
		label := ""
		if i == 0 {
			label = "pattern:"
		}
		fmt.Fprintf(&b, "  %-12s |%s|\n", label, row)
	}
	fmt.Fprintf(&b, "  ingredients: %s\n", strings.Join(view.Ingredients, ", "))
	if view.Version != "" {
		fmt.Fprintf(&b, "  version:     %s\n", view.Version)
	}
	if view.Removed != "" {
		fmt.Fprintf(&b, "  removed:     %s\n", view.Removed)
	}
	if view.Unreleased {
		fmt.Fprintf(&b, "  unreleased:  feature flag %s\n", view.FeatureFlag)
	}
	if r.Notes != "" {
		fmt.Fprintf(&b, "  notes:       %s\n", markdown.PlainText(r.Notes))
	}
	_, err = fmt.Fprint(w, b.String())
	return err
}
