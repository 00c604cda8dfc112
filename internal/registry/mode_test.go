package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "git.home.luguber.info/inful/craftbook/internal/errors"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{in: "output", want: ModeOutput},
		{in: "Makes", want: ModeOutput},
		{in: "", want: ModeOutput},
		{in: "INGREDIENT", want: ModeIngredient},
		{in: "uses", want: ModeIngredient},
		{in: "sideways", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, derrors.IsCategory(err, derrors.CategoryValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearch_Mode(t *testing.T) {
	reg := load(t, fixtureRecipes, "", nil)

	got, err := reg.Search(ModeOutput, "stick")
	require.NoError(t, err)
	assert.Equal(t, []string{"stick"}, keys(got))

	got, err = reg.Search(ModeIngredient, "minecraft:log")
	require.NoError(t, err)
	assert.Equal(t, []string{"charcoal"}, keys(got))

	_, err = reg.Search(Mode("bogus"), "stick")
	require.Error(t, err)
}
