package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/searchbox/internal/adapters/driven/config/file"
	navmemory "github.com/custodia-labs/searchbox/internal/adapters/driven/navigation/memory"
	"github.com/custodia-labs/searchbox/internal/adapters/driving/tui"
	"github.com/custodia-labs/searchbox/internal/core/services"
	"github.com/custodia-labs/searchbox/internal/logger"
)

// tuiLogFile receives log output while the TUI owns the terminal.
const tuiLogFile = "tui.log"

var (
	tuiEndpoint string
	tuiLocal    bool
	tuiURL      string
)

// isTerminal reports whether fd is a terminal. Replaced in tests.
var isTerminal = func(fd int) bool {
	return term.IsTerminal(fd)
}

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive search box",
	Long: `Launch the interactive search box.

Typing is debounced and the committed query is mirrored into the q
parameter of the location shown above the input. Back and forward move
through the location history and re-run the query found there.

Controls:
  (type)          Edit the query
  Enter           Search now
  Ctrl+R          Retry a failed search
  Ctrl+U          Clear the query
  Alt+←/Alt+→     Back / Forward
  ↑/↓             Move the selection
  Esc, Ctrl+C     Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().StringVar(&tuiEndpoint, "endpoint", "", "search API base URL (default from client.endpoint)")
	tuiCmd.Flags().BoolVar(&tuiLocal, "local", false, "search the catalog in-process instead of over HTTP")
	tuiCmd.Flags().StringVar(&tuiURL, "url", "/", "initial location, e.g. /search?q=react")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	if !isTerminal(int(os.Stdin.Fd())) || !isTerminal(int(os.Stdout.Fd())) {
		return tui.ErrNotTerminal
	}

	svc, err := requireSettings()
	if err != nil {
		return err
	}
	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	backend, err := newBackend(settings, tuiEndpoint, tuiLocal)
	if err != nil {
		return err
	}

	history, err := navmemory.NewHistory(tuiURL)
	if err != nil {
		return fmt.Errorf("invalid --url: %w", err)
	}

	restore := redirectLogs()
	defer restore()

	session := services.NewSession(backend, services.SessionOptions{
		Debounce: settings.Client.Debounce,
		Limit:    settings.Client.Limit,
		Context:  cmd.Context(),
	})
	defer session.Close()

	syncer := services.NewURLSynchronizer(history, session, services.DefaultQueryParam)
	defer syncer.Close()

	app, err := tui.NewApp(tui.NewPorts(session, history))
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

// redirectLogs sends log output to a file next to the config file, or
// discards it, so it does not corrupt the screen. It returns a func
// restoring stderr.
func redirectLogs() func() {
	store, ok := configStore.(*file.ConfigStore)
	if !ok {
		logger.SetOutput(io.Discard)
		return func() { logger.SetOutput(os.Stderr) }
	}
	path := filepath.Join(filepath.Dir(store.Path()), tuiLogFile)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		logger.Warn("open %s: %v", path, err)
		return func() {}
	}
	logger.SetOutput(f)
	return func() {
		logger.SetOutput(os.Stderr)
		_ = f.Close()
	}
}
