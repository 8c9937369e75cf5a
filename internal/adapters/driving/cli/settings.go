package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/searchbox/internal/core/domain"
	"github.com/custodia-labs/searchbox/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change the server, client and catalog settings.

Settings are stored in config.toml inside the config directory.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Change a single setting",
	Long: `Change a single setting by its config key.

Durations are whole milliseconds. Examples:
  searchbox settings set client.debounce_ms 150
  searchbox settings set server.failure_rate 0`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	if configStore != nil {
		cmd.Printf("File: %s\n", configStore.Path())
	}
	cmd.Println()

	values := settingValues(settings)
	for _, key := range svc.Keys() {
		cmd.Printf("  %-22s %s\n", key, values[key])
	}

	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := svc.Set(key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

// settingValues renders settings keyed by config key.
func settingValues(s *domain.Settings) map[string]string {
	catalog := s.Catalog.File
	if catalog == "" {
		catalog = "(built-in)"
	}
	return map[string]string{
		services.KeyServerAddr:        s.Server.Addr,
		services.KeyServerLatency:     strconv.FormatInt(s.Server.Latency.Milliseconds(), 10),
		services.KeyServerFailureRate: strconv.FormatFloat(s.Server.FailureRate, 'g', -1, 64),
		services.KeyClientEndpoint:    s.Client.Endpoint,
		services.KeyClientLimit:       strconv.Itoa(s.Client.Limit),
		services.KeyClientDebounce:    strconv.FormatInt(s.Client.Debounce.Milliseconds(), 10),
		services.KeyClientRate:        strconv.FormatFloat(s.Client.RatePerSecond, 'g', -1, 64),
		services.KeyCatalogFile:       catalog,
	}
}
