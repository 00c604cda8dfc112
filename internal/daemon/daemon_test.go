package daemon

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/craftbook/internal/config"
	derrors "git.home.luguber.info/inful/craftbook/internal/errors"
	"git.home.luguber.info/inful/craftbook/internal/recipe"
	"git.home.luguber.info/inful/craftbook/internal/testutil"
)

func testConfig(t *testing.T, dir string) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Data.Dir = dir
	cfg.Data.Tags = "tags.json"
	cfg.Data.Features = "features.json"
	cfg.Data.Watch = true
	cfg.Journal.Enabled = true
	return cfg
}

func TestDaemon_StartStop(t *testing.T) {
	cfg := testConfig(t, testutil.DataDir(t))
	d, err := New(cfg, Options{})
	require.NoError(t, err)
	assert.Equal(t, StatusStopped, d.GetStatus())

	ctx := context.Background()
	require.NoError(t, d.Start(ctx))
	assert.Equal(t, StatusRunning, d.GetStatus())
	require.Error(t, d.Start(ctx), "second start is rejected")

	reg := d.Holder().Current()
	require.NotNil(t, reg)
	assert.True(t, reg.Contains("stick"))

	view, err := d.Sessions().Start(ctx, reg, []*recipe.Recipe{testutil.Recipe(t, reg, "torch")}, 0, "")
	require.NoError(t, err)
	assert.Equal(t, "torch", view.Page.Recipe.Key)
	assert.Equal(t, 1, d.Sessions().Len())

	require.NoError(t, d.Stop(ctx))
	assert.Equal(t, StatusStopped, d.GetStatus())
	require.NoError(t, d.Stop(ctx), "stop is idempotent")
}

func TestDaemon_StartFailsOnBadData(t *testing.T) {
	dir := testutil.DataDir(t)
	testutil.WriteFile(t, dir, "recipes.json", `{"stick": {"type": "crafting_shaped"}}`)

	d, err := New(testConfig(t, dir), Options{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Stop(context.Background()) })

	err = d.Start(context.Background())
	require.Error(t, err)
	assert.True(t, derrors.IsCategory(err, derrors.CategoryData))
	assert.Equal(t, StatusError, d.GetStatus())
}

func TestNew_RequiresConfig(t *testing.T) {
	_, err := New(nil, Options{})
	require.Error(t, err)
}
