package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/searchbox/internal/core/domain"
	"github.com/custodia-labs/searchbox/internal/core/services"
)

func TestSettingsCmd_Subcommands(t *testing.T) {
	names := make([]string, 0)
	for _, c := range settingsCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"show", "set"}, names)
}

func TestSettingsShow_ListsEveryKey(t *testing.T) {
	setupTestSettings(t, nil)

	out, _, err := execute(t, context.Background(), "settings", "show")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
	assert.Contains(t, out, "File: :memory:")
	for _, key := range services.NewSettingsService(nil).Keys() {
		assert.Contains(t, out, key)
	}
	assert.Contains(t, out, domain.DefaultAddr)
	assert.Contains(t, out, "(built-in)")
}

func TestSettingsCmd_DefaultsToShow(t *testing.T) {
	setupTestSettings(t, nil)

	out, _, err := execute(t, context.Background(), "settings")

	require.NoError(t, err)
	assert.Contains(t, out, "Current Settings")
}

func TestSettingsSet_Persists(t *testing.T) {
	store := setupTestSettings(t, nil)

	out, _, err := execute(t, context.Background(), "settings", "set", "client.debounce_ms", "150")

	require.NoError(t, err)
	assert.Contains(t, out, "Set client.debounce_ms = 150")
	assert.Equal(t, 150, store.GetInt(services.KeyClientDebounce))
}

func TestSettingsSet_RejectsUnknownKey(t *testing.T) {
	setupTestSettings(t, nil)

	_, _, err := execute(t, context.Background(), "settings", "set", "nope", "1")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSettingsSet_RejectsInvalidValue(t *testing.T) {
	store := setupTestSettings(t, nil)

	_, _, err := execute(t, context.Background(), "settings", "set", "server.failure_rate", "2")

	require.Error(t, err)
	assert.Equal(t, 0.0, store.GetFloat(services.KeyServerFailureRate))
}

func TestSettingsSet_RequiresTwoArgs(t *testing.T) {
	setupTestSettings(t, nil)

	_, _, err := execute(t, context.Background(), "settings", "set", "client.limit")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 2 arg(s)")
}

func TestSettingValues(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.Catalog.File = "/tmp/catalog.toml"

	values := settingValues(&settings)

	assert.Equal(t, "300", values[services.KeyClientDebounce])
	assert.Equal(t, "500", values[services.KeyServerLatency])
	assert.Equal(t, "0.1", values[services.KeyServerFailureRate])
	assert.Equal(t, "10", values[services.KeyClientLimit])
	assert.Equal(t, "/tmp/catalog.toml", values[services.KeyCatalogFile])
}
