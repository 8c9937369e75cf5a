package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/searchbox/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/searchbox/internal/core/services"
)

// setupTestSettings injects an in-memory settings service with no
// injected latency or failures, overlaid with values.
func setupTestSettings(t *testing.T, values map[string]any) *memory.ConfigStore {
	t.Helper()

	base := map[string]any{
		services.KeyServerLatency:     int64(0),
		services.KeyServerFailureRate: 0.0,
	}
	for k, v := range values {
		base[k] = v
	}
	store := memory.NewConfigStoreWith(base)

	prevStore, prevSvc := configStore, settingsService
	SetSettingsService(store, services.NewSettingsService(store))
	t.Cleanup(func() {
		SetSettingsService(prevStore, prevSvc)
		resetFlags(rootCmd)
	})
	return store
}

// resetFlags restores every flag in the tree to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// setContext binds ctx to every command; cobra keeps a child's context
// from the previous execution otherwise.
func setContext(cmd *cobra.Command, ctx context.Context) {
	cmd.SetContext(ctx)
	for _, c := range cmd.Commands() {
		setContext(c, ctx)
	}
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()

	stdout, stderr := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)
	setContext(rootCmd, ctx)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
	}()

	err := rootCmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}
