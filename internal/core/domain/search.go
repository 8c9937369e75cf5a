package domain

import "strings"

// SearchOptions configures a search query.
type SearchOptions struct {
	// Limit is the maximum number of results. Zero or negative means no limit.
	Limit int
}

// SearchResult represents a single search hit.
// Results are immutable once received.
type SearchResult struct {
	// ID is unique within a response.
	ID string `json:"id" toml:"id"`

	// Title is the human-readable title.
	Title string `json:"title" toml:"title"`

	// Snippet is a short description shown under the title.
	Snippet string `json:"snippet" toml:"snippet"`
}

// SearchResponse is the ordered result set for one query.
// Order is determined by the backend and preserved for display.
type SearchResponse struct {
	Results []SearchResult `json:"results"`
}

// NormalizeQuery trims leading and trailing whitespace.
// The empty string is the canonical "no query" value.
func NormalizeQuery(raw string) string {
	return strings.TrimSpace(raw)
}
