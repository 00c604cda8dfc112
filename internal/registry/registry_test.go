package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/craftbook/internal/errors"
	"git.home.luguber.info/inful/craftbook/internal/feature"
	"git.home.luguber.info/inful/craftbook/internal/recipe"
	"git.home.luguber.info/inful/craftbook/internal/source"
	"git.home.luguber.info/inful/craftbook/internal/tags"
)

const fixtureRecipes = `{
	"stick": {
		"type": "minecraft:crafting_shaped",
		"pattern": ["#", "#"],
		"key": {"#": "minecraft:planks"},
		"result": {"id": "minecraft:stick", "count": 4}
	},
	"charcoal": {
		"type": "minecraft:smelting",
		"ingredient": "minecraft:log",
		"result": "minecraft:charcoal",
		"experience": 0.15
	}
}`

func mustDecode(t *testing.T, js string) any {
	t.Helper()
	if js == "" {
		return nil
	}
	v, err := source.DecodeJSON(strings.NewReader(js))
	require.NoError(t, err)
	return v
}

func load(t *testing.T, recipes, tagDoc string, flags *feature.Set) *Registry {
	t.Helper()
	reg, err := loadErr(t, recipes, tagDoc, flags)
	require.NoError(t, err)
	return reg
}

func loadErr(t *testing.T, recipes, tagDoc string, flags *feature.Set) (*Registry, error) {
	t.Helper()
	b, err := source.NewBundle(mustDecode(t, recipes), mustDecode(t, tagDoc), nil)
	require.NoError(t, err)
	return Load(b, flags)
}

func keys(list []*recipe.Recipe) []string {
	out := make([]string, len(list))
	for i, r := range list {
		out[i] = r.Key
	}
	return out
}

func TestLoad_StickAndCharcoal(t *testing.T) {
	reg := load(t, fixtureRecipes, "", nil)

	stick, ok := reg.Get("stick")
	require.True(t, ok)
	assert.Equal(t, recipe.CraftResult{Item: "minecraft:stick", Count: 4}, stick.Result)
	assert.True(t, reg.Contains("charcoal"))
	assert.False(t, reg.Contains("diamond"))
	assert.Equal(t, []string{"stick", "charcoal"}, reg.Keys())
	assert.Equal(t, 2, reg.Len())

	got, err := reg.SearchIngredient("minecraft:planks")
	require.NoError(t, err)
	assert.Equal(t, []string{"stick"}, keys(got))

	got, err = reg.SearchOutput("Charcoal")
	require.NoError(t, err)
	assert.Equal(t, []string{"charcoal"}, keys(got))
}

func TestSearch_UnknownQueryIsEmpty(t *testing.T) {
	reg := load(t, fixtureRecipes, "", nil)

	got, err := reg.SearchOutput("minecraft:beacon")
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = reg.SearchIngredient("   ")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestSearch_TagQuery(t *testing.T) {
	reg := load(t, `{
		"oak_door": {"type": "crafting_shaped", "pattern": ["##"], "key": {"#": "minecraft:oak_planks"}, "result": "minecraft:oak_door"},
		"birch_door": {"type": "crafting_shaped", "pattern": ["##"], "key": {"#": "minecraft:birch_planks"}, "result": "minecraft:birch_door"},
		"chest": {"type": "crafting_shaped", "pattern": ["###"], "key": {"#": "#minecraft:planks"}, "result": "minecraft:chest"}
	}`, `{"vanilla": {"planks": ["minecraft:oak_planks", "minecraft:birch_planks"]}}`, nil)

	got, err := reg.SearchIngredient("#planks")
	require.NoError(t, err)
	assert.Equal(t, []string{"oak_door", "chest", "birch_door"}, keys(got))

	_, err = reg.SearchIngredient("#othermod:planks")
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
}

func TestLoad_BareIDsGetDefaultNamespace(t *testing.T) {
	reg := load(t, `{
		"stick": {"type": "crafting_shaped", "pattern": ["#", "#"], "key": {"#": "oak_planks"}, "result": {"id": "stick", "count": 4}},
		"chest": {"type": "crafting_shaped", "pattern": ["###"], "key": {"#": "#planks"}, "result": "chest"}
	}`, `{"vanilla": {"planks": ["oak_planks", "minecraft:birch_planks"]}}`, nil)

	got, err := reg.SearchOutput("stick")
	require.NoError(t, err)
	assert.Equal(t, []string{"stick"}, keys(got))

	got, err = reg.SearchIngredient("minecraft:oak_planks")
	require.NoError(t, err)
	assert.Equal(t, []string{"stick", "chest"}, keys(got))

	assert.Equal(t, []string{"stick", "chest"}, keys(reg.SearchItemIngredient("minecraft:oak_planks")))
	assert.Equal(t, []string{"chest"}, keys(reg.SearchItemOutput("minecraft:chest")))
}

func TestSearchItemOutput_WaterBucketAddsSponge(t *testing.T) {
	reg := load(t, `{
		"water_bucket_from_cauldron": {"type": "crafting_shapeless", "ingredients": ["minecraft:bucket"], "result": "minecraft:water_bucket"}
	}`, "", nil)

	got := reg.SearchItemOutput(recipe.WaterBucket)
	require.Len(t, got, 2)
	assert.Equal(t, "water_bucket_from_cauldron", got[0].Key)
	assert.Equal(t, SpongeKey, got[1].Key)
	assert.Equal(t, recipe.Sponge, got[1].Result.Item)
	assert.Equal(t, []string{recipe.WetSponge}, reg.IngredientItems(got[1]))

	// The synthetic recipe is not part of the registry itself.
	assert.False(t, reg.Contains(SpongeKey))
	assert.Empty(t, reg.SearchItemIngredient(recipe.WetSponge))
}

func TestSearchItemOutput_DocumentSponge(t *testing.T) {
	reg := load(t, `{
		"sponge": {"type": "smelting", "ingredient": "minecraft:wet_sponge", "result": "minecraft:sponge", "notes": "Fills a bucket."}
	}`, "", nil)

	got := reg.SearchItemOutput(recipe.WaterBucket)
	require.Len(t, got, 1)
	assert.Equal(t, "Fills a bucket.", got[0].Notes)
	assert.Same(t, reg.Sponge(), got[0])
}

func TestSearchItemOutput_SpongeNeverTwice(t *testing.T) {
	reg := load(t, `{
		"sponge": {"type": "smelting", "ingredient": "minecraft:wet_sponge", "result": "minecraft:water_bucket"}
	}`, "", nil)

	got := reg.SearchItemOutput(recipe.WaterBucket)
	assert.Equal(t, []string{"sponge"}, keys(got))
}

func TestSearchItemOutput_HidesCookingDuplicates(t *testing.T) {
	reg := load(t, `{
		"iron_ingot_from_smelting_raw_iron": {"type": "smelting", "ingredient": "minecraft:raw_iron", "result": "minecraft:iron_ingot"},
		"iron_ingot_from_blasting_raw_iron": {"type": "blasting", "ingredient": "minecraft:raw_iron", "result": "minecraft:iron_ingot"},
		"cooked_beef_from_campfire_cooking": {"type": "campfire_cooking", "ingredient": "minecraft:beef", "result": "minecraft:cooked_beef"}
	}`, "", nil)

	assert.Equal(t, []string{"iron_ingot_from_smelting_raw_iron"}, keys(reg.SearchItemOutput("minecraft:iron_ingot")))
	assert.Empty(t, reg.SearchItemOutput("minecraft:cooked_beef"))

	// Ingredient searches keep every apparatus.
	assert.Len(t, reg.SearchItemIngredient("minecraft:raw_iron"), 2)
}

func TestIngredientItems_TransmuteGuard(t *testing.T) {
	const tagDoc = `{"vanilla": {"shulker_boxes": ["minecraft:shulker_box", "minecraft:blue_shulker_box"]}}`
	tests := []struct {
		include bool
		want    []string
	}{
		{false, []string{"minecraft:shulker_box", "minecraft:blue_dye"}},
		{true, []string{"minecraft:shulker_box", "minecraft:blue_shulker_box", "minecraft:blue_dye"}},
	}
	for _, tt := range tests {
		js := `{"blue_shulker_box": {
			"type": "crafting_transmute",
			"input": "#minecraft:shulker_boxes",
			"material": "minecraft:blue_dye",
			"result": "minecraft:blue_shulker_box",
			"include_result": ` + map[bool]string{true: "true", false: "false"}[tt.include] + `
		}}`
		reg := load(t, js, tagDoc, nil)
		r, _ := reg.Get("blue_shulker_box")
		assert.Equal(t, tt.want, reg.IngredientItems(r))

		users := reg.SearchItemIngredient("minecraft:blue_shulker_box")
		assert.Equal(t, tt.include, len(users) == 1)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		recipes string
		tags    string
		target  error
	}{
		{"unsupported type", `{"x": {"type": "crafting_bogus", "result": "a"}}`, "", recipe.ErrUnsupportedType},
		{"malformed ingredient", `{"x": {"type": "stonecutting", "ingredient": 3, "result": "a"}}`, "", recipe.ErrMalformedIngredient},
		{"foreign tag namespace", `{"x": {"type": "stonecutting", "ingredient": "#mod:stone", "result": "a"}}`, "", tags.ErrNamespace},
		{"tag arity", `{"x": {"type": "stonecutting", "ingredient": "#a:b:c", "result": "a"}}`, "", tags.ErrMalformed},
		{"tag cycle", `{"x": {"type": "stonecutting", "ingredient": "#a", "result": "a"}}`, `{"vanilla": {"a": ["#b"], "b": ["#a"]}}`, tags.ErrCycle},
		{"unknown tag layer", fixtureRecipes, `{"winter_drop": {}}`, tags.ErrMalformed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := loadErr(t, tt.recipes, tt.tags, nil)
			require.Error(t, err)
			assert.Nil(t, reg)
			assert.True(t, errors.Is(err, tt.target), err.Error())
			assert.True(t, derrors.IsCategory(err, derrors.CategoryData))
		})
	}
}

func TestLoad_NilBundle(t *testing.T) {
	_, err := Load(nil, nil)
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryData))
}

func TestEffectiveVersion(t *testing.T) {
	flags, err := feature.New([]feature.Flag{
		{Name: "bundle", Released: true, Version: "1.21.2"},
		{Name: "winter_drop"},
	})
	require.NoError(t, err)

	reg := load(t, `{
		"a": {"type": "stonecutting", "ingredient": "x", "result": "y", "version": "1.14"},
		"b": {"type": "stonecutting", "ingredient": "x", "result": "y", "feature_flag": "bundle", "datapack_version": "1.20.3"},
		"c": {"type": "stonecutting", "ingredient": "x", "result": "y", "feature_flag": "winter_drop", "datapack_version": "1.21.3"},
		"d": {"type": "stonecutting", "ingredient": "x", "result": "y"}
	}`, "", flags)

	want := map[string]string{"a": "1.14", "b": "1.21.2", "c": "1.21.3", "d": ""}
	for key, v := range want {
		r, _ := reg.Get(key)
		assert.Equal(t, v, reg.EffectiveVersion(r), key)
	}

	c, _ := reg.Get("c")
	assert.True(t, reg.Unreleased(c))

	stats := reg.Stats()
	assert.Equal(t, 4, stats.Recipes)
	assert.Equal(t, 4, stats.ByKind["stonecutting"])
	assert.Equal(t, 1, stats.Unreleased)
	assert.Equal(t, []string{feature.Vanilla, "bundle", "winter_drop"}, stats.Flags)
}
