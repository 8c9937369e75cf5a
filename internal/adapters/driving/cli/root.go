// Package cli provides the cobra command tree for searchbox.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/searchbox/internal/adapters/driven/config/file"
	"github.com/custodia-labs/searchbox/internal/core/ports/driven"
	"github.com/custodia-labs/searchbox/internal/core/ports/driving"
	"github.com/custodia-labs/searchbox/internal/core/services"
	"github.com/custodia-labs/searchbox/internal/logger"
)

var (
	// version is set at build time via SetVersion.
	version = "dev"

	verbose   bool
	configDir string

	// configStore and settingsService are built from --config-dir before
	// any command runs, unless already injected.
	configStore     driven.ConfigStore
	settingsService driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "searchbox",
	Short: "Debounced search box with URL sync",
	Long: `searchbox is a search box for a small documentation catalog.

Typing is debounced, only the latest request may update the results, and
the committed query is kept in sync with the q parameter of the location.
A backend stub with injected latency and failures serves the catalog.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default ~/.searchbox)")
}

// setup wires the settings service for the command about to run.
func setup(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)

	if settingsService != nil {
		return nil
	}

	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	logger.Debug("config: %s", store.Path())

	configStore = store
	settingsService = services.NewSettingsService(store)
	return nil
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// SetSettingsService injects the settings service and its store,
// bypassing --config-dir.
func SetSettingsService(store driven.ConfigStore, svc driving.SettingsService) {
	configStore = store
	settingsService = svc
}

// Execute runs the root command with ctx.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// requireSettings returns the settings service or an error when unwired.
func requireSettings() (driving.SettingsService, error) {
	if settingsService == nil {
		return nil, errors.New("settings service not configured")
	}
	return settingsService, nil
}
