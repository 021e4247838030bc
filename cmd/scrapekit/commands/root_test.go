package commands

import (
	"testing"

	"scrapekit/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyOverrides(t *testing.T) {
	loaded, err := config.Load()
	require.NoError(t, err)

	dir := t.TempDir()
	require.NoError(t, discoverCmd.ParseFlags([]string{"--workers", "4", "--output", dir, "--offset", "10", "--headless=false"}))
	t.Cleanup(func() {
		for _, name := range []string{"workers", "output", "offset", "headless"} {
			f := discoverCmd.Flags().Lookup(name)
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	})

	require.NoError(t, applyOverrides(discoverCmd, loaded))

	assert.Equal(t, 4, loaded.Discovery.Workers)
	assert.Equal(t, dir, loaded.Harvest.OutputDir)
	assert.Equal(t, 10, loaded.Harvest.Offset)
	assert.False(t, loaded.Discovery.Browser.Headless)
	assert.Equal(t, 200, loaded.Harvest.Limit)
}

func TestApplyOverrides_Invalid(t *testing.T) {
	loaded, err := config.Load()
	require.NoError(t, err)

	require.NoError(t, harvestCmd.ParseFlags([]string{"--workers", "0"}))
	t.Cleanup(func() {
		f := harvestCmd.Flags().Lookup("workers")
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})

	assert.ErrorContains(t, applyOverrides(harvestCmd, loaded), "DISCOVERY_WORKERS")
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"hits", "discover", "reviews", "harvest", "install"} {
		assert.True(t, names[want], want)
	}
}
