package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/searchbox/internal/core/domain"
)

// SearchInput is the input schema for the search tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"text to look for in catalog titles and snippets"`
	Limit int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 10)"`
}

// SearchOutput is the output schema for the search tool.
type SearchOutput struct {
	Query   string               `json:"query"`
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search",
		Description: "Search the catalog by title and snippet, case-insensitively",
	}, s.handleSearch)
}

// handleSearch handles the search tool invocation. Backend failures are
// returned as errors, which the SDK reports as tool errors.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = domain.DefaultLimit
	}

	query := domain.NormalizeQuery(input.Query)
	resp, err := s.ports.Search.Search(ctx, query, domain.SearchOptions{Limit: limit})
	if err != nil {
		return nil, SearchOutput{}, err
	}

	return nil, toOutput(query, resp.Results), nil
}

func toOutput(query string, results []domain.SearchResult) SearchOutput {
	output := SearchOutput{
		Query:   query,
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i, r := range results {
		output.Results[i] = SearchResultOutput{
			ID:      r.ID,
			Title:   r.Title,
			Snippet: r.Snippet,
		}
	}
	return output
}
