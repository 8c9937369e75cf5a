package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/searchbox/internal/adapters/driving/mcp"
)

var (
	mcpEndpoint string
	mcpLocal    bool
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can search
the catalog.

By default, the server communicates over stdio using JSON-RPC. Searches
go to the search API at --endpoint, or to the in-process catalog with
--local.

Use --port to start an HTTP server instead, which enables:
  - Testing with MCP Inspector web UI
  - Remote access via HTTP

Examples:
  # Stdio mode (default)
  searchbox mcp serve --local

  # HTTP mode (for MCP Inspector, remote access)
  searchbox mcp serve --port 8080

Client configuration:
  {
    "mcpServers": {
      "searchbox": {
        "command": "/path/to/searchbox",
        "args": ["mcp", "serve", "--local"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpServeCmd.Flags().StringVar(&mcpEndpoint, "endpoint", "", "search API base URL (default from client.endpoint)")
	mcpServeCmd.Flags().BoolVar(&mcpLocal, "local", false, "search the catalog in-process instead of over HTTP")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	svc, err := requireSettings()
	if err != nil {
		return err
	}
	settings, err := svc.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	backend, err := newBackend(settings, mcpEndpoint, mcpLocal)
	if err != nil {
		return err
	}

	ports := &mcp.Ports{
		Search:   backend,
		Settings: svc,
	}

	server, err := mcp.NewServer(ports, version)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
