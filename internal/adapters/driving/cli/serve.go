package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/searchbox/internal/adapters/driven/config/file"
	httpadapter "github.com/custodia-labs/searchbox/internal/adapters/driving/http"
	"github.com/custodia-labs/searchbox/internal/core/domain"
	"github.com/custodia-labs/searchbox/internal/core/services"
	"github.com/custodia-labs/searchbox/internal/logger"
)

// reloadDelay coalesces the burst of events an editor save produces.
const reloadDelay = 250 * time.Millisecond

var (
	serveAddr        string
	serveLatency     time.Duration
	serveFailureRate float64
	serveCatalog     string
	serveWatch       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the backend stub",
	Long: `Serves the catalog over HTTP with injected latency and failures.

Endpoints:
  GET /api/search?q=&limit=   filtered catalog entries
  GET /healthz                liveness
  GET /metrics                Prometheus metrics

With --watch, edits to server.latency_ms and server.failure_rate in the
config file take effect without a restart. Flags win over the file.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (default from server.addr)")
	serveCmd.Flags().DurationVar(&serveLatency, "latency", 0, "latency before each non-empty response")
	serveCmd.Flags().Float64Var(&serveFailureRate, "failure-rate", 0, "probability [0,1] of a transient 503")
	serveCmd.Flags().StringVar(&serveCatalog, "catalog", "", "TOML catalog file replacing the built-in catalog")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "reload fault settings when the config file changes")
	rootCmd.AddCommand(serveCmd)
}

// applyServeFlags overlays explicitly set flags onto settings.
func applyServeFlags(cmd *cobra.Command, settings *domain.Settings) {
	flags := cmd.Flags()
	if flags.Changed("addr") {
		settings.Server.Addr = serveAddr
	}
	if flags.Changed("latency") {
		settings.Server.Latency = serveLatency
	}
	if flags.Changed("failure-rate") {
		settings.Server.FailureRate = serveFailureRate
	}
	if flags.Changed("catalog") {
		settings.Catalog.File = serveCatalog
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}
	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	applyServeFlags(cmd, settings)
	if err := settings.Validate(); err != nil {
		return err
	}

	backend, err := newLocalBackend(settings)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	if serveWatch {
		if configStore == nil {
			return errors.New("--watch needs a config file")
		}
		reload := services.NewDebouncer(reloadDelay, nil, func(struct{}) {
			reloadFaults(cmd, backend)
		})
		defer reload.Stop()

		if err := file.Watch(ctx, configStore.Path(), func() { reload.Set(struct{}{}) }); err != nil {
			return err
		}
		cmd.Printf("Watching %s\n", configStore.Path())
	}

	latency, rate := backend.Faults()
	cmd.Printf("Serving catalog on %s (latency %s, failure rate %.2f)\n", settings.Server.Addr, latency, rate)

	return httpadapter.NewServer(backend).ListenAndServe(ctx, settings.Server.Addr)
}

// reloadFaults re-reads the config file and applies the fault settings.
// Invalid files are reported and the previous values kept.
func reloadFaults(cmd *cobra.Command, backend *services.CatalogSearchService) {
	if err := configStore.Load(); err != nil {
		logger.Warn("reload %s: %v", configStore.Path(), err)
		return
	}
	settings, err := settingsService.Get()
	if err != nil {
		logger.Warn("reload: %v", err)
		return
	}
	applyServeFlags(cmd, settings)
	backend.SetFaults(settings.Server.Latency, settings.Server.FailureRate)
	logger.Info("reloaded: latency=%s failure_rate=%.2f", settings.Server.Latency, settings.Server.FailureRate)
}
