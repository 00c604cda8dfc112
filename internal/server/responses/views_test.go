package responses

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/craftbook/internal/browse"
	"git.home.luguber.info/inful/craftbook/internal/recipe"
	"git.home.luguber.info/inful/craftbook/internal/testutil"
)

func TestRecipeView(t *testing.T) {
	reg := testutil.Registry(t)

	v := Recipe(reg, testutil.Recipe(t, reg, "torch"))
	assert.Equal(t, "shaped", v.Kind)
	assert.Equal(t, recipe.CraftingTable, v.Apparatus)
	assert.Equal(t, 4, v.Result.Count)
	assert.Len(t, v.Pattern, 2)
	assert.Equal(t, []string{"minecraft:coal", "minecraft:charcoal", "minecraft:stick"}, v.Items)
	assert.Contains(t, v.NotesHTML, "<em>dark</em>")
	assert.Empty(t, v.NoteLinks)

	bundle := Recipe(reg, testutil.Recipe(t, reg, "bundle"))
	assert.True(t, bundle.Unreleased)
	assert.Empty(t, bundle.NotesHTML)
}

func TestSummaries(t *testing.T) {
	reg := testutil.Registry(t)
	list, err := reg.SearchOutput("#minecraft:planks")
	require.NoError(t, err)

	sums := Summaries(reg, reg.Sort(list))
	require.Len(t, sums, len(list))
	for _, s := range sums {
		assert.Contains(t, []string{"oak_planks", "birch_planks"}, s.Key)
	}
}

func TestPageView(t *testing.T) {
	reg := testutil.Registry(t)
	sess, err := browse.New(reg, reg.SearchItemOutput("minecraft:torch"), 0)
	require.NoError(t, err)

	pv := Page(reg, sess.Render())
	assert.Equal(t, 0, pv.Index)
	assert.Equal(t, 1, pv.Total)
	assert.Equal(t, "torch", pv.Recipe.Key)
	require.Len(t, pv.Actions, len(browse.Slots()))
	assert.Equal(t, "first", pv.Actions[0].Slot)
	assert.False(t, pv.Actions[0].Enabled)
}
