package registry

import (
	"context"
	"log/slog"

	derrors "git.home.luguber.info/inful/craftbook/internal/errors"
	"git.home.luguber.info/inful/craftbook/internal/feature"
	"git.home.luguber.info/inful/craftbook/internal/logfields"
	"git.home.luguber.info/inful/craftbook/internal/source"
)

// LoadFiles decodes the documents named by p and builds a Registry from
// them. A missing features document means vanilla only.
func LoadFiles(ctx context.Context, p source.Paths, opts ...Option) (*Registry, error) {
	b, err := source.LoadBundle(ctx, p)
	if err != nil {
		slog.Debug("Source documents failed to load", logfields.Stage("documents"), logfields.Path(p.Recipes))
		return nil, derrors.LoadFailed("documents", err)
	}

	flags := feature.Default()
	if b.Features != nil {
		if flags, err = feature.Parse(b.Features); err != nil {
			slog.Debug("Feature document rejected", logfields.Stage("features"), logfields.Path(p.Features))
			return nil, derrors.LoadFailed("features", err)
		}
	}
	return Load(b, flags, opts...)
}
