package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/searchbox/internal/core/domain"
	"github.com/custodia-labs/searchbox/internal/core/services"
)

var (
	searchEndpoint string
	searchLocal    bool
	searchLimit    int
	searchJSON     bool
	searchRetries  int
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Run a one-shot search",
	Long: `Runs a single query through a search session and prints the results.

The query is sent to the search API at --endpoint (default client.endpoint),
or served in-process with --local. Transient failures are retried up to
--retries times.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVar(&searchEndpoint, "endpoint", "", "search API base URL (default from client.endpoint)")
	searchCmd.Flags().BoolVar(&searchLocal, "local", false, "search the catalog in-process instead of over HTTP")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results (default from client.limit)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	searchCmd.Flags().IntVar(&searchRetries, "retries", 0, "retries after a failed search")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	svc, err := requireSettings()
	if err != nil {
		return err
	}
	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	backend, err := newBackend(settings, searchEndpoint, searchLocal)
	if err != nil {
		return err
	}

	limit := settings.Client.Limit
	if searchLimit > 0 {
		limit = searchLimit
	}

	session := services.NewSession(backend, services.SessionOptions{
		Limit:        limit,
		InitialQuery: args[0],
		Context:      cmd.Context(),
	})
	defer session.Close()

	session.Wait()
	state := session.State()
	for attempt := 1; state.Status == domain.StatusError && attempt <= searchRetries; attempt++ {
		cmd.PrintErrf("%s Retrying (%d/%d)...\n", state.ErrorMessage, attempt, searchRetries)
		session.Retry()
		session.Wait()
		state = session.State()
	}

	if searchJSON {
		return outputSearchJSON(cmd, state)
	}
	return outputSearchTable(cmd, state)
}

func outputSearchJSON(cmd *cobra.Command, state domain.SessionState) error {
	if state.Status == domain.StatusError {
		return fmt.Errorf("search failed: %s", state.ErrorMessage)
	}

	results := state.Results
	if results == nil {
		results = []domain.SearchResult{}
	}
	data, err := json.MarshalIndent(domain.SearchResponse{Results: results}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, state domain.SessionState) error {
	switch state.Status {
	case domain.StatusError:
		return fmt.Errorf("search failed: %s", state.ErrorMessage)
	case domain.StatusIdle:
		cmd.Println(state.Status.Message())
		return nil
	case domain.StatusNoResults:
		cmd.Printf("Nothing found for %q.\n", state.Query)
		return nil
	case domain.StatusLoading, domain.StatusSuccess:
	}

	cmd.Printf("Results for %q:\n\n", state.Query)
	for i, r := range state.Results {
		cmd.Printf("  [%d] %s\n", i+1, r.Title)
		cmd.Printf("      %s\n", r.Snippet)
		cmd.Printf("      id: %s\n\n", r.ID)
	}
	return nil
}
