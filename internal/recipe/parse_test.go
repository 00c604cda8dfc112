package recipe

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/craftbook/internal/source"
)

func doc(t *testing.T, js string) any {
	t.Helper()
	v, err := source.DecodeJSON(strings.NewReader(js))
	require.NoError(t, err)
	return v
}

func TestParseIngredientGroup(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Ingredient
	}{
		{"item", `"minecraft:stick"`, []Ingredient{Item("minecraft:stick")}},
		{"tag", `"#minecraft:planks"`, []Ingredient{Tag("minecraft:planks")}},
		{"array", `["minecraft:coal", "#not_a_tag"]`, []Ingredient{Item("minecraft:coal"), Item("#not_a_tag")}},
		{"item object", `{"item": "minecraft:coal"}`, []Ingredient{Item("minecraft:coal")}},
		{"tag object", `{"tag": "minecraft:logs"}`, []Ingredient{Tag("minecraft:logs")}},
		{"object array", `[{"item": "minecraft:coal"}, {"tag": "minecraft:logs"}]`, []Ingredient{Item("minecraft:coal"), Tag("minecraft:logs")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIngredientGroup(doc(t, tt.in))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseIngredientGroup_Malformed(t *testing.T) {
	for _, in := range []string{`3`, `null`, `true`, `[["nested"]]`, `[1]`, `{"count": 2}`} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseIngredientGroup(doc(t, in))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformedIngredient))
		})
	}
}

func TestParse_Dispatch(t *testing.T) {
	tests := []struct {
		typ   string
		body  string
		kind  Kind
		table string
	}{
		{"minecraft:crafting_shaped", `"pattern": ["#"], "key": {"#": "minecraft:oak_planks"}`, KindShaped, CraftingTable},
		{"crafting_special_tippedarrow", `"pattern": ["A"], "key": {"A": "minecraft:arrow"}`, KindShaped, CraftingTable},
		{"crafting_special_decorated_pot", `"pattern": ["A"], "key": {"A": "minecraft:brick"}`, KindShaped, CraftingTable},
		{"crafting_shapeless", `"ingredients": ["minecraft:coal"]`, KindShapeless, CraftingTable},
		{"crafting_special_firework_star", `"ingredients": []`, KindShapeless, CraftingTable},
		{"crafting_special_firework_star_fade", `"ingredients": []`, KindShapeless, CraftingTable},
		{"crafting_special_firework_rocket", `"ingredients": []`, KindShapeless, CraftingTable},
		{"crafting_special_shulkerboxcoloring", `"ingredients": []`, KindShapeless, CraftingTable},
		{"crafting_special_suspiciousstew", `"ingredients": []`, KindShapeless, CraftingTable},
		{"crafting_transmute", `"input": "#minecraft:shulker_boxes", "material": "minecraft:blue_dye"`, KindTransmute, CraftingTable},
		{"smelting", `"ingredient": "minecraft:log"`, KindSmelting, Furnace},
		{"blasting", `"ingredient": "minecraft:raw_iron"`, KindSmelting, Furnace},
		{"smoking", `"ingredient": "minecraft:beef"`, KindSmelting, Furnace},
		{"campfire_cooking", `"ingredient": "minecraft:beef"`, KindSmelting, Furnace},
		{"brewing", `"reagent": "minecraft:sugar", "base": "minecraft:potion"`, KindBrewing, BrewingStand},
		{"stonecutting", `"ingredient": "minecraft:stone"`, KindStonecutting, Stonecutter},
		{"smithing", `"base": "minecraft:diamond_sword", "addition": "minecraft:netherite_ingot"`, KindLegacySmithing, SmithingTable},
		{"smithing_trim", `"base": "#minecraft:trimmable_armor", "template": "minecraft:coast_armor_trim_smithing_template", "addition": "#minecraft:trim_materials"`, KindSmithing, SmithingTable},
		{"smithing_transform", `"base": "minecraft:diamond_sword", "template": "minecraft:netherite_upgrade_smithing_template", "addition": "minecraft:netherite_ingot"`, KindSmithing, SmithingTable},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			js := `{"type": "` + tt.typ + `", "result": "minecraft:out", ` + tt.body + `}`
			r, err := Parse("k", doc(t, js))
			require.NoError(t, err)
			assert.Equal(t, tt.kind, r.Kind())
			assert.Equal(t, tt.table, r.TableItem())
			assert.True(t, SupportedType(tt.typ))
		})
	}
}

func TestParse_UnsupportedType(t *testing.T) {
	_, err := Parse("k", doc(t, `{"type": "minecraft:crafting_decorated_bread", "result": "x"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedType)
	assert.Contains(t, err.Error(), `"k"`)
}

func TestParse_CommonFields(t *testing.T) {
	r, err := Parse("iron_ingot_from_smelting_raw_iron", doc(t, `{
		"type": "minecraft:smelting",
		"group": "iron_ingot",
		"category": "misc",
		"ingredient": "minecraft:raw_iron",
		"result": {"id": "minecraft:iron_ingot"},
		"experience": 0.7,
		"version": "1.17",
		"notes": "Raw iron *only*.",
		"animated": true
	}`))
	require.NoError(t, err)

	assert.Equal(t, CraftResult{Item: "minecraft:iron_ingot", Count: 1}, r.Result)
	assert.Equal(t, "iron_ingot", r.Group)
	assert.Equal(t, "misc", r.Category)
	assert.InDelta(t, 0.7, r.Experience, 1e-9)
	assert.InDelta(t, 17.0, r.VersionNumber(), 1e-9)
	assert.False(t, r.Removed())
	assert.Equal(t, "iron_ingot_from_smelting_raw_iron.gif", r.ImageName())

	s, ok := r.Variant.(*SmeltingRecipe)
	require.True(t, ok)
	assert.Equal(t, SmeltingTypeSmelting, s.Type)
	assert.Equal(t, 200, s.CookingTime)
	assert.Equal(t, []Ingredient{Item("minecraft:raw_iron")}, r.Ingredients())
}

func TestParse_Result(t *testing.T) {
	tests := []struct {
		name    string
		result  string
		want    CraftResult
		wantErr bool
	}{
		{"string", `"minecraft:stick"`, CraftResult{"minecraft:stick", 1}, false},
		{"id and count", `{"id": "minecraft:stick", "count": 4}`, CraftResult{"minecraft:stick", 4}, false},
		{"legacy item", `{"item": "minecraft:stick", "count": 2}`, CraftResult{"minecraft:stick", 2}, false},
		{"zero count", `{"id": "minecraft:stick", "count": 0}`, CraftResult{}, true},
		{"fractional count", `{"id": "minecraft:stick", "count": 1.5}`, CraftResult{}, true},
		{"no id", `{"count": 1}`, CraftResult{}, true},
		{"number", `7`, CraftResult{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			js := `{"type": "crafting_shapeless", "ingredients": ["minecraft:oak_planks"], "result": ` + tt.result + `}`
			r, err := Parse("stick", doc(t, js))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, r.Result)
		})
	}
}

func TestParse_Shaped(t *testing.T) {
	r, err := Parse("stick", doc(t, `{
		"type": "minecraft:crafting_shaped",
		"pattern": ["#", "#"],
		"key": {"#": "minecraft:planks"},
		"result": {"id": "minecraft:stick", "count": 4}
	}`))
	require.NoError(t, err)

	s := r.Variant.(*ShapedRecipe)
	assert.Equal(t, []string{"#  ", "#  "}, s.Pattern)
	assert.True(t, s.ShowNotification)
	assert.Equal(t, []Ingredient{Item("minecraft:planks"), Item("minecraft:planks")}, r.Ingredients())
	assert.Equal(t, []Ingredient{Item("minecraft:planks")}, s.Cell(1, 0))
	assert.Nil(t, s.Cell(1, 1))
	assert.Nil(t, s.Cell(2, 0))
	assert.Equal(t, CraftResult{Item: "minecraft:stick", Count: 4}, r.Result)
}

func TestParse_ShapedKeyOrder(t *testing.T) {
	r, err := Parse("piston", doc(t, `{
		"type": "crafting_shaped",
		"pattern": ["TTT", "#X#", "#R#"],
		"key": {"T": "#minecraft:planks", "X": "minecraft:iron_ingot", "#": "minecraft:cobblestone", "R": "minecraft:redstone"},
		"result": "minecraft:piston",
		"show_notification": false
	}`))
	require.NoError(t, err)

	s := r.Variant.(*ShapedRecipe)
	assert.Equal(t, []rune{'T', 'X', '#', 'R'}, s.KeyOrder)
	assert.False(t, s.ShowNotification)
	assert.Len(t, r.Ingredients(), 9)
}

func TestParse_ShapedErrors(t *testing.T) {
	tests := map[string]string{
		"too wide":       `"pattern": ["####"], "key": {"#": "a"}`,
		"too many rows":  `"pattern": ["#", "#", "#", "#"], "key": {"#": "a"}`,
		"unknown symbol": `"pattern": ["#X"], "key": {"#": "a"}`,
		"long symbol":    `"pattern": ["#"], "key": {"##": "a"}`,
		"missing key":    `"pattern": ["#"]`,
		"bad ingredient": `"pattern": ["#"], "key": {"#": 4}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("k", doc(t, `{"type": "crafting_shaped", "result": "x", `+body+`}`))
			require.Error(t, err)
		})
	}
}

func TestParse_SmeltingCookingTime(t *testing.T) {
	tests := []struct {
		typ  string
		body string
		want int
	}{
		{"blasting", ``, 100},
		{"smoking", ``, 100},
		{"campfire_cooking", ``, 600},
		{"smelting", `, "cookingtime": 150`, 150},
	}
	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			r, err := Parse("k", doc(t, `{"type": "`+tt.typ+`", "ingredient": "a", "result": "b"`+tt.body+`}`))
			require.NoError(t, err)
			s := r.Variant.(*SmeltingRecipe)
			assert.Equal(t, tt.typ, s.Type.String())
			assert.Equal(t, tt.want, s.CookingTime)
		})
	}
}

func TestParse_SmithingTrimDefaultsResultToBase(t *testing.T) {
	r, err := Parse("coast_trim", doc(t, `{
		"type": "smithing_trim",
		"base": ["minecraft:iron_chestplate", "minecraft:gold_chestplate"],
		"template": "minecraft:coast_armor_trim_smithing_template",
		"addition": "#minecraft:trim_materials"
	}`))
	require.NoError(t, err)
	assert.Equal(t, CraftResult{Item: "minecraft:iron_chestplate", Count: 1}, r.Result)
	assert.Equal(t, SmithingTrim, r.Variant.(*SmithingRecipe).Type)
	assert.Len(t, r.Ingredients(), 4)
}

func TestParse_BrewingIngredientsUnion(t *testing.T) {
	r, err := Parse("swiftness", doc(t, `{
		"type": "brewing",
		"reagent": "minecraft:sugar",
		"base": ["minecraft:potion"],
		"result": "minecraft:potion{swiftness}"
	}`))
	require.NoError(t, err)
	assert.Equal(t, []Ingredient{Item("minecraft:sugar"), Item("minecraft:potion")}, r.Ingredients())
}

func TestParse_BareIDsGetDefaultNamespace(t *testing.T) {
	r, err := Parse("stick", doc(t, `{
		"type": "crafting_shaped",
		"pattern": ["#"],
		"key": {"#": ["oak_planks", {"item": "birch_planks"}, "othermod:planks"]},
		"result": {"id": "stick", "count": 4}
	}`))
	require.NoError(t, err)
	assert.Equal(t, CraftResult{Item: "minecraft:stick", Count: 4}, r.Result)
	assert.Equal(t, []Ingredient{
		{Kind: IngredientItem, ID: "minecraft:oak_planks"},
		{Kind: IngredientItem, ID: "minecraft:birch_planks"},
		{Kind: IngredientItem, ID: "othermod:planks"},
	}, r.Ingredients())
}

func TestCanonicalID(t *testing.T) {
	tests := map[string]string{
		"stick":                       "minecraft:stick",
		"minecraft:stick":             "minecraft:stick",
		"othermod:gear":               "othermod:gear",
		"minecraft:potion{swiftness}": "minecraft:potion{swiftness}",
		"":                            "",
	}
	for in, want := range tests {
		assert.Equal(t, want, CanonicalID(in), in)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"not an object":     `[]`,
		"missing type":      `{"result": "x"}`,
		"bad version":       `{"type": "stonecutting", "ingredient": "a", "result": "b", "version": "one"}`,
		"version number":    `{"type": "stonecutting", "ingredient": "a", "result": "b", "version": 1.2}`,
		"negative xp":       `{"type": "smelting", "ingredient": "a", "result": "b", "experience": -1}`,
		"missing result":    `{"type": "stonecutting", "ingredient": "a"}`,
		"missing field":     `{"type": "brewing", "reagent": "a", "result": "b"}`,
		"malformed reagent": `{"type": "brewing", "reagent": null, "base": "a", "result": "b"}`,
	}
	for name, js := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse("k", doc(t, js))
			require.Error(t, err)
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"1.14", 14},
		{"1.20.5", 20.5},
		{"1.9", 9},
		{DatapackVersion, 99},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVersion(tt.in)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	for _, bad := range []string{"", "1.", "1.x", "1.2.3.4"} {
		_, err := ParseVersion(bad)
		assert.Error(t, err, bad)
	}
}

func TestRecipe_SetVersions(t *testing.T) {
	r := &Recipe{Key: "k", Variant: &StonecuttingRecipe{}}
	require.NoError(t, r.SetVersions("1.14", "1.20"))
	assert.InDelta(t, 14.0, r.VersionNumber(), 1e-9)
	n, ok := r.RemovedNumber()
	assert.True(t, ok)
	assert.InDelta(t, 20.0, n, 1e-9)
	require.Error(t, r.SetVersions("bad", ""))
}

func TestCompanionKey(t *testing.T) {
	assert.Equal(t, "iron_ingot_from_blasting_raw_iron", CompanionKey("iron_ingot_from_smelting_raw_iron", SmeltingTypeBlasting))
	assert.Equal(t, "iron_ingot_from_smelting_raw_iron", CompanionKey("iron_ingot_from_blasting_raw_iron", SmeltingTypeSmelting))
	assert.Equal(t, "cooked_beef_from_smoking", CompanionKey("cooked_beef", SmeltingTypeSmoking))
	assert.Equal(t, "cooked_beef_from_campfire_cooking", CompanionKey("cooked_beef", SmeltingTypeCampfire))
	assert.Equal(t, "cooked_beef", CompanionKey("cooked_beef", SmeltingTypeSmelting))
	assert.Equal(t, "cooked_beef_from_campfire_cooking", CompanionKey("cooked_beef_from_smoking", SmeltingTypeCampfire))
}

func TestCanonical(t *testing.T) {
	tests := map[string]string{
		"Oak Planks":             "minecraft:oak_planks",
		"  oak_planks ":          "minecraft:oak_planks",
		"minecraft:STICK":        "minecraft:stick",
		"mod:thing":              "mod:thing",
		"potion{Potion:water}":   "potion{Potion:water}",
		"Tipped_Arrow{x}":        "minecraft:tipped_arrow{x}",
		"minecraft:tipped_arrow": "minecraft:tipped_arrow",
		"":                       "",
	}
	for in, want := range tests {
		assert.Equal(t, want, Canonical(in), in)
	}
}

func TestSplitID(t *testing.T) {
	ns, name, err := SplitID("planks")
	require.NoError(t, err)
	assert.Equal(t, "minecraft", ns)
	assert.Equal(t, "planks", name)

	ns, name, err = SplitID("mod:planks")
	require.NoError(t, err)
	assert.Equal(t, "mod", ns)
	assert.Equal(t, "planks", name)

	_, _, err = SplitID("a:b:c")
	require.Error(t, err)
}
