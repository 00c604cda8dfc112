// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/craftbook/internal/feature"
	"git.home.luguber.info/inful/craftbook/internal/recipe"
	"git.home.luguber.info/inful/craftbook/internal/registry"
	"git.home.luguber.info/inful/craftbook/internal/source"
)

const (
	testDirPermissions  = 0o750
	testFilePermissions = 0o600
)

// Recipes is a small recipe document covering the common variants.
const Recipes = `{
	"stick": {"type": "minecraft:crafting_shaped", "group": "sticks", "pattern": ["#", "#"], "key": {"#": "#minecraft:planks"}, "result": {"id": "minecraft:stick", "count": 4}},
	"oak_planks": {"type": "minecraft:crafting_shapeless", "group": "planks", "ingredients": ["minecraft:oak_log"], "result": {"id": "minecraft:oak_planks", "count": 4}},
	"birch_planks": {"type": "minecraft:crafting_shapeless", "group": "planks", "ingredients": ["minecraft:birch_log"], "result": {"id": "minecraft:birch_planks", "count": 4}},
	"crafting_table": {"type": "minecraft:crafting_shaped", "pattern": ["##", "##"], "key": {"#": "#minecraft:planks"}, "result": "minecraft:crafting_table"},
	"torch": {"type": "minecraft:crafting_shaped", "pattern": ["C", "S"], "key": {"C": ["minecraft:coal", "minecraft:charcoal"], "S": "minecraft:stick"}, "result": {"id": "minecraft:torch", "count": 4}, "notes": "Lights up *dark* caves."},
	"charcoal": {"type": "minecraft:smelting", "ingredient": "#minecraft:logs", "result": "minecraft:charcoal", "experience": 0.15},
	"stone": {"type": "minecraft:smelting", "ingredient": "minecraft:cobblestone", "result": "minecraft:stone", "experience": 0.1},
	"stone_slab_from_stonecutting": {"type": "minecraft:stonecutting", "ingredient": "minecraft:stone", "result": {"id": "minecraft:stone_slab", "count": 2}},
	"bundle": {"type": "minecraft:crafting_shaped", "pattern": ["S", "L"], "key": {"S": "minecraft:string", "L": "minecraft:leather"}, "result": "minecraft:bundle", "feature_flag": "bundle"}
}`

// Tags is a tag document for Recipes.
const Tags = `{
	"vanilla": {
		"planks": ["minecraft:oak_planks", "minecraft:birch_planks"],
		"logs": ["minecraft:oak_log", "minecraft:birch_log"]
	}
}`

// Features is a feature document for Recipes.
const Features = `[{"name": "bundle", "released": false}]`

// Registry builds a registry from Recipes, Tags and Features.
func Registry(t testing.TB) *registry.Registry {
	t.Helper()
	return RegistryFrom(t, Recipes, Tags, Features)
}

// RegistryFrom builds a registry from JSON documents. Empty tags or
// features documents are treated as absent.
func RegistryFrom(t testing.TB, recipes, tags, features string) *registry.Registry {
	t.Helper()
	decode := func(js string) any {
		if js == "" {
			return nil
		}
		v, err := source.DecodeJSON(strings.NewReader(js))
		require.NoError(t, err)
		return v
	}
	b, err := source.NewBundle(decode(recipes), decode(tags), decode(features))
	require.NoError(t, err)

	flags := feature.Default()
	if b.Features != nil {
		flags, err = feature.Parse(b.Features)
		require.NoError(t, err)
	}
	reg, err := registry.Load(b, flags)
	require.NoError(t, err)
	return reg
}

// DataDir writes Recipes, Tags and Features into a temporary directory as
// recipes.json, tags.json and features.json and returns the directory.
func DataDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.MkdirAll(dir, testDirPermissions))
	WriteFile(t, dir, "recipes.json", Recipes)
	WriteFile(t, dir, "tags.json", Tags)
	WriteFile(t, dir, "features.json", Features)
	return dir
}

// WriteFile writes content to dir/name.
func WriteFile(t testing.TB, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), testFilePermissions))
}

// Recipe looks key up and fails the test when it is missing.
func Recipe(t testing.TB, reg *registry.Registry, key string) *recipe.Recipe {
	t.Helper()
	r, ok := reg.Get(key)
	require.True(t, ok, "recipe %s", key)
	return r
}
