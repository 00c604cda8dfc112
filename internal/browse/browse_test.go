package browse

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/craftbook/internal/recipe"
	"git.home.luguber.info/inful/craftbook/internal/registry"
	"git.home.luguber.info/inful/craftbook/internal/source"
)

const fixture = `{
	"stick": {"type": "crafting_shaped", "pattern": ["#", "#"], "key": {"#": "minecraft:oak_planks"}, "result": {"id": "minecraft:stick", "count": 4}},
	"oak_planks": {"type": "crafting_shapeless", "ingredients": ["minecraft:oak_log"], "result": {"id": "minecraft:oak_planks", "count": 4}},
	"crafting_table": {"type": "crafting_shaped", "pattern": ["##", "##"], "key": {"#": "minecraft:oak_planks"}, "result": "minecraft:crafting_table"},
	"torch": {"type": "crafting_shaped", "pattern": ["C", "S"], "key": {"C": "minecraft:coal", "S": "minecraft:stick"}, "result": "minecraft:torch"},
	"iron_ingot_from_smelting_raw_iron": {"type": "smelting", "ingredient": "minecraft:raw_iron", "result": "minecraft:iron_ingot"},
	"iron_ingot_from_blasting_raw_iron": {"type": "blasting", "ingredient": "minecraft:raw_iron", "result": "minecraft:iron_ingot"},
	"blast_furnace": {"type": "crafting_shaped", "pattern": ["III", "IFI"], "key": {"I": "minecraft:iron_ingot", "F": "minecraft:furnace"}, "result": "minecraft:blast_furnace"},
	"blast_furnace_display": {"type": "crafting_shapeless", "ingredients": ["minecraft:blast_furnace", "minecraft:item_frame"], "result": "minecraft:display"},
	"strength": {"type": "brewing", "reagent": "minecraft:blaze_powder", "base": "minecraft:awkward_potion", "result": "minecraft:strength_potion"},
	"blaze_powder": {"type": "crafting_shapeless", "ingredients": ["minecraft:blaze_rod"], "result": {"id": "minecraft:blaze_powder", "count": 2}},
	"awkward_potion": {"type": "brewing", "reagent": "minecraft:nether_wart", "base": "minecraft:water_potion", "result": "minecraft:awkward_potion"},
	"stone": {"type": "smelting", "ingredient": "minecraft:cobblestone", "result": "minecraft:stone"},
	"stone_slab_from_stonecutting": {"type": "stonecutting", "ingredient": "minecraft:stone", "result": {"id": "minecraft:stone_slab", "count": 2}}
}`

func newRegistry(t *testing.T, js string) *registry.Registry {
	t.Helper()
	v, err := source.DecodeJSON(strings.NewReader(js))
	require.NoError(t, err)
	b, err := source.NewBundle(v, nil, nil)
	require.NoError(t, err)
	reg, err := registry.Load(b, nil)
	require.NoError(t, err)
	return reg
}

func start(t *testing.T, reg *registry.Registry, keys ...string) *Session {
	t.Helper()
	var list []*recipe.Recipe
	for _, k := range keys {
		r, ok := reg.Get(k)
		require.True(t, ok, k)
		list = append(list, r)
	}
	s, err := New(reg, list, 0)
	require.NoError(t, err)
	return s
}

func enabled(actions []Action) map[Slot]string {
	out := make(map[Slot]string)
	for _, a := range actions {
		if a.Enabled {
			out[a.Slot] = a.Description
		}
	}
	return out
}

func TestNew_Preconditions(t *testing.T) {
	reg := newRegistry(t, fixture)
	stick, _ := reg.Get("stick")

	_, err := New(reg, nil, 0)
	assert.ErrorIs(t, err, ErrEmptyList)

	_, err = New(reg, []*recipe.Recipe{stick}, 1)
	assert.ErrorIs(t, err, ErrPageOutOfRange)

	_, err = New(reg, []*recipe.Recipe{stick}, -1)
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestSession_SingleRecipe(t *testing.T) {
	reg := newRegistry(t, fixture)
	s := start(t, reg, "stick")

	actions := s.AvailableActions()
	require.Len(t, actions, len(Slots()))
	for _, slot := range []Slot{SlotFirst, SlotBack10, SlotPrev, SlotNext, SlotForward10, SlotLast} {
		assert.False(t, actions[slot].Enabled, slot.String())
		assert.Equal(t, "page:"+slot.String(), actions[slot].Description)
	}

	assert.False(t, s.Invoke(SlotNext))
	assert.Equal(t, 0, s.State().Page)
	assert.Equal(t, "stick", s.CurrentPage().Key)

	assert.Equal(t, map[Slot]string{
		SlotUses:        "uses:minecraft:stick",
		SlotTable:       "table:crafting_table",
		SlotIngredient1: "makes:minecraft:oak_planks",
	}, enabled(actions))
}

func TestSession_Uses(t *testing.T) {
	reg := newRegistry(t, fixture)
	s := start(t, reg, "stick")

	require.True(t, s.Invoke(SlotUses))
	assert.Equal(t, "torch", s.CurrentPage().Key)
	assert.Equal(t, 1, len(s.State().List))
}

func TestSession_Table(t *testing.T) {
	reg := newRegistry(t, fixture)
	s := start(t, reg, "stick")

	require.True(t, s.Invoke(SlotTable))
	assert.Equal(t, "crafting_table", s.CurrentPage().Key)

	// The crafting table is its own apparatus.
	assert.False(t, s.Render().Action(SlotTable).Enabled)
	assert.False(t, s.Invoke(SlotTable))
}

func TestSession_IngredientJump(t *testing.T) {
	reg := newRegistry(t, fixture)
	s := start(t, reg, "torch")

	// Coal has no producing recipe and is skipped.
	assert.Equal(t, "makes:minecraft:stick", s.Render().Action(SlotIngredient1).Description)
	assert.False(t, s.Render().Action(SlotIngredient2).Enabled)

	require.True(t, s.Invoke(SlotIngredient1))
	assert.Equal(t, "stick", s.CurrentPage().Key)
}

func TestSession_SmeltingReservedSlots(t *testing.T) {
	reg := newRegistry(t, fixture)
	s := start(t, reg, "iron_ingot_from_smelting_raw_iron")

	got := enabled(s.AvailableActions())
	assert.Equal(t, "uses:minecraft:blast_furnace", got[SlotReserved1])
	_, ok := got[SlotReserved2]
	assert.False(t, ok)
	// No smoker or campfire companions exist.
	assert.Equal(t, "table:furnace", "table:"+recipe.LocalName(s.CurrentPage().TableItem()))
	_, ok = got[SlotTable]
	assert.False(t, ok, "no furnace recipe in fixture")

	require.True(t, s.Invoke(SlotReserved1))
	assert.Equal(t, "blast_furnace_display", s.CurrentPage().Key)
}

func TestSession_BrewingReservedSlot(t *testing.T) {
	reg := newRegistry(t, fixture)
	s := start(t, reg, "strength")

	got := enabled(s.AvailableActions())
	assert.Equal(t, "uses:minecraft:blaze_powder", got[SlotReserved1])
	// Blaze powder is covered by the reserved slot, so the window starts at
	// the base potion.
	assert.Equal(t, "makes:minecraft:awkward_potion", got[SlotIngredient1])
	_, ok := got[SlotIngredient2]
	assert.False(t, ok)

	require.True(t, s.Invoke(SlotReserved1))
	assert.Equal(t, "strength", s.CurrentPage().Key)
}

func TestSession_Stonecutting(t *testing.T) {
	reg := newRegistry(t, fixture)
	s := start(t, reg, "stone_slab_from_stonecutting")

	got := enabled(s.AvailableActions())
	assert.Equal(t, map[Slot]string{SlotReserved1: "makes:minecraft:stone"}, got)

	require.True(t, s.Invoke(SlotReserved1))
	assert.Equal(t, "stone", s.CurrentPage().Key)
}

func TestSession_Pagination(t *testing.T) {
	var b strings.Builder
	b.WriteString("{")
	for i := range 25 {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `"r%02d": {"type": "stonecutting", "ingredient": "minecraft:stone", "result": "minecraft:out%02d"}`, i, i)
	}
	b.WriteString("}")
	reg := newRegistry(t, b.String())

	var keys []string
	for i := range 25 {
		keys = append(keys, fmt.Sprintf("r%02d", i))
	}
	s := start(t, reg, keys...)

	steps := []struct {
		slot Slot
		want int
	}{
		{SlotForward10, 10},
		{SlotForward10, 20},
		{SlotForward10, 24},
		{SlotPrev, 23},
		{SlotBack10, 13},
		{SlotBack10, 3},
		{SlotBack10, 0},
		{SlotLast, 24},
		{SlotFirst, 0},
		{SlotNext, 1},
	}
	for _, st := range steps {
		require.True(t, s.Invoke(st.slot), st.slot.String())
		assert.Equal(t, st.want, s.State().Page, st.slot.String())
		assert.Equal(t, fmt.Sprintf("r%02d", st.want), s.CurrentPage().Key)
	}

	s2 := start(t, reg, keys...)
	assert.False(t, s2.Invoke(SlotFirst))
	assert.False(t, s2.Invoke(SlotBack10))
	require.True(t, s2.Invoke(SlotLast))
	assert.False(t, s2.Invoke(SlotNext))
	assert.False(t, s2.Invoke(SlotForward10))
}

func TestSession_MoreIngredients(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"big": {"type": "crafting_shapeless", "result": "minecraft:big", "ingredients": [`)
	for i := range 12 {
		if i > 0 {
			b.WriteString(",")
		}
		fmt.Fprintf(&b, `"minecraft:part%02d"`, i)
	}
	b.WriteString(`]}`)
	for i := range 12 {
		fmt.Fprintf(&b, `, "part%02d": {"type": "stonecutting", "ingredient": "minecraft:stone", "result": "minecraft:part%02d"}`, i, i)
	}
	b.WriteString("}")
	reg := newRegistry(t, b.String())
	s := start(t, reg, "big")

	page := s.Render()
	for i := range WindowSize {
		a := page.Action(SlotIngredient1 + Slot(i))
		assert.True(t, a.Enabled, a.Slot.String())
		assert.Equal(t, fmt.Sprintf("makes:minecraft:part%02d", i), a.Description)
	}
	assert.True(t, page.Action(SlotMore).Enabled)
	assert.Equal(t, "more:9", page.Action(SlotMore).Description)

	require.True(t, s.Invoke(SlotMore))
	assert.Equal(t, 0, s.State().Page)
	assert.Equal(t, 9, s.State().WindowStart)

	page = s.Render()
	for i := range WindowSize {
		a := page.Action(SlotIngredient1 + Slot(i))
		if i < 3 {
			assert.True(t, a.Enabled, a.Slot.String())
			assert.Equal(t, fmt.Sprintf("makes:minecraft:part%02d", 9+i), a.Description)
		} else {
			assert.False(t, a.Enabled, a.Slot.String())
		}
	}
	assert.False(t, page.Action(SlotMore).Enabled)
	assert.False(t, s.Invoke(SlotMore))

	// Jumping to an ingredient resets the window.
	require.True(t, s.Invoke(SlotIngredient2))
	assert.Equal(t, "part10", s.CurrentPage().Key)
	assert.Equal(t, 0, s.State().WindowStart)
}

func TestSession_InvokeUnknownSlot(t *testing.T) {
	reg := newRegistry(t, fixture)
	s := start(t, reg, "stick")
	assert.False(t, s.Invoke(Slot(99)))
	assert.False(t, s.Invoke(Slot(-1)))
}

func TestApply_IsPure(t *testing.T) {
	reg := newRegistry(t, fixture)
	stick, _ := reg.Get("stick")
	st := State{List: []*recipe.Recipe{stick}}

	page := Plan(reg, st)
	next := Apply(reg, st, page.Action(SlotUses))
	assert.Equal(t, "stick", st.Current().Key)
	assert.Equal(t, "torch", next.Current().Key)

	same := Apply(reg, st, page.Action(SlotNext))
	assert.Equal(t, st, same)
}

func TestParseSlot(t *testing.T) {
	for _, slot := range Slots() {
		got, ok := ParseSlot(slot.String())
		require.True(t, ok)
		assert.Equal(t, slot, got)
	}
	_, ok := ParseSlot("ingredient10")
	assert.False(t, ok)

	var s Slot
	require.NoError(t, s.UnmarshalText([]byte("more")))
	assert.Equal(t, SlotMore, s)
	require.Error(t, s.UnmarshalText([]byte("sideways")))

	text, err := SlotIngredient3.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "ingredient3", string(text))
	assert.Equal(t, 9, WindowSize)
}
