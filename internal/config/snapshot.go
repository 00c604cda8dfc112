package config

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"git.home.luguber.info/inful/craftbook/internal/source"
)

// SourcePaths returns the document locations with Dir applied.
func (d DataConfig) SourcePaths() source.Paths {
	return source.Paths{Recipes: d.Recipes, Tags: d.Tags, Features: d.Features}.Resolve(d.Dir)
}

// Snapshot computes a stable hash of the fields that decide which registry
// gets loaded. Two configurations with the same snapshot load the same data.
func (c *Config) Snapshot() string {
	if c == nil {
		return ""
	}
	h := sha256.New()
	w := func(parts ...string) {
		h.Write([]byte(strings.Join(parts, "=")))
		h.Write([]byte{0})
	}
	p := c.Data.SourcePaths()
	w("data.recipes", p.Recipes)
	w("data.tags", p.Tags)
	w("data.features", p.Features)
	return hex.EncodeToString(h.Sum(nil))
}
