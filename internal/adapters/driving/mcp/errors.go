// Package mcp provides an MCP (Model Context Protocol) server adapter for searchbox.
// It lets AI assistants query the catalog through the same search service
// the HTTP API serves.
package mcp

import "errors"

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("mcp: search service is required")
