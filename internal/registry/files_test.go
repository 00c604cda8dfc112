package registry

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/craftbook/internal/errors"
	"git.home.luguber.info/inful/craftbook/internal/source"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o600))
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "recipes.json", fixtureRecipes)
	writeFile(t, dir, "tags.json", `{"vanilla": {"planks": ["minecraft:oak_planks", "minecraft:birch_planks"]}}`)
	writeFile(t, dir, "features.yaml", "- name: bundle\n  released: false\n")

	reg, err := LoadFiles(context.Background(), source.Paths{
		Recipes:  "recipes.json",
		Tags:     "tags.json",
		Features: "features.yaml",
	}.Resolve(dir))
	require.NoError(t, err)

	assert.Equal(t, 2, reg.Len())
	assert.Equal(t, []string{"vanilla", "bundle"}, reg.Flags().Layers())
	assert.True(t, reg.Tags().Defined("minecraft:planks"))
}

func TestLoadFiles_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "recipes.json", fixtureRecipes)
	writeFile(t, dir, "features.yaml", "- name: vanilla\n")

	tests := []struct {
		name  string
		paths source.Paths
		stage string
	}{
		{name: "missing recipes", paths: source.Paths{Recipes: "absent.json"}, stage: "documents"},
		{name: "bad features", paths: source.Paths{Recipes: "recipes.json", Features: "features.yaml"}, stage: "features"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFiles(context.Background(), tt.paths.Resolve(dir))
			require.Error(t, err)
			ce, ok := derrors.As(err)
			require.True(t, ok)
			assert.Equal(t, derrors.CategoryData, ce.Category)
			assert.Equal(t, tt.stage, ce.Context["stage"])
		})
	}
}
