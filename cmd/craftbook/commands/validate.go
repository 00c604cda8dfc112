package commands

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"
	"time"

	"git.home.luguber.info/inful/craftbook/internal/config"
	"git.home.luguber.info/inful/craftbook/internal/registry"
)

// ValidateCmd implements the 'validate' command.
type ValidateCmd struct{}

func (v *ValidateCmd) Run(g *Global, root *CLI) error {
	cfg, err := root.LoadConfig()
	if err != nil {
		return err
	}
	return RunValidate(context.Background(), g, cfg)
}

// RunValidate loads the registry once and prints a summary. Any load
// problem is returned as-is so that the exit code reflects its category.
func RunValidate(ctx context.Context, g *Global, cfg *config.Config) error {
	start := time.Now()
	reg, err := registry.LoadFiles(ctx, cfg.Data.SourcePaths(), registry.WithLogger(slog.Default()))
	if err != nil {
		return err
	}

	st := reg.Stats()
	w := out(g)
	_, _ = fmt.Fprintf(w, "OK: %d recipes loaded in %s\n", st.Recipes, time.Since(start).Round(time.Millisecond))
	for _, k := range slices.Sorted(maps.Keys(st.ByKind)) {
		_, _ = fmt.Fprintf(w, "  %-16s %d\n", k, st.ByKind[k])
	}
	_, _ = fmt.Fprintf(w, "  removed          %d\n", st.Removed)
	_, _ = fmt.Fprintf(w, "  unreleased       %d\n", st.Unreleased)
	if len(st.Flags) > 0 {
		_, _ = fmt.Fprintf(w, "  feature layers   %s\n", strings.Join(st.Flags, ", "))
	}
	return nil
}
