package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/searchbox/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for searchbox resources.
	uriScheme = "searchbox://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "settings",
		Name:        "settings",
		Description: "Effective searchbox settings",
		MIMEType:    "application/json",
	}, s.handleSettingsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "search/{query}",
		Name:        "search-results",
		Description: "Results for a query, in backend order",
		MIMEType:    "application/json",
	}, s.handleSearchResource)
}

// handleSettingsResource returns the current settings.
func (s *Server) handleSettingsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Settings == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	settings, err := s.ports.Settings.Get()
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	view := map[string]any{
		"server": map[string]any{
			"addr":         settings.Server.Addr,
			"latency_ms":   settings.Server.Latency.Milliseconds(),
			"failure_rate": settings.Server.FailureRate,
		},
		"client": map[string]any{
			"endpoint":     settings.Client.Endpoint,
			"limit":        settings.Client.Limit,
			"debounce_ms":  settings.Client.Debounce.Milliseconds(),
			"rate_per_sec": settings.Client.RatePerSecond,
		},
		"catalog": map[string]any{
			"file": settings.Catalog.File,
		},
	}

	return jsonContents(req.Params.URI, view)
}

// handleSearchResource runs the query embedded in the URI.
func (s *Server) handleSearchResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	query, ok := extractQuery(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	resp, err := s.ports.Search.Search(ctx, query, domain.SearchOptions{Limit: domain.DefaultLimit})
	if err != nil {
		return nil, fmt.Errorf("searching %q: %w", query, err)
	}

	return jsonContents(req.Params.URI, toOutput(query, resp.Results))
}

func jsonContents(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractQuery extracts the normalised query from searchbox://search/{query}.
func extractQuery(uri string) (string, bool) {
	const prefix = uriScheme + "search/"

	if !strings.HasPrefix(uri, prefix) {
		return "", false
	}

	query, err := url.PathUnescape(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return "", false
	}
	query = domain.NormalizeQuery(query)
	if query == "" {
		return "", false
	}
	return query, true
}
