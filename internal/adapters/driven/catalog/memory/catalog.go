// Package memory provides the fixed in-memory catalog served by the
// backend stub.
package memory

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/searchbox/internal/core/domain"
	"github.com/custodia-labs/searchbox/internal/core/ports/driven"
)

// Ensure Catalog implements the interface.
var _ driven.Catalog = (*Catalog)(nil)

// ErrEmptyCatalog is returned when a catalog file defines no entries.
var ErrEmptyCatalog = errors.New("catalog has no entries")

// Catalog is an immutable list of search results.
type Catalog struct {
	entries []domain.SearchResult
}

// NewCatalog creates a catalog holding a copy of entries.
func NewCatalog(entries []domain.SearchResult) *Catalog {
	c := &Catalog{entries: make([]domain.SearchResult, len(entries))}
	copy(c.entries, entries)
	return c
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return NewCatalog(defaultEntries)
}

// catalogFile is the on-disk layout:
//
//	[[entries]]
//	id = "guide-url-sync"
//	title = "URL Synchronization Patterns"
//	snippet = "..."
type catalogFile struct {
	Entries []domain.SearchResult `toml:"entries"`
}

// LoadFile reads a TOML catalog. Every entry needs a unique, non-empty id.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}

	var file catalogFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if len(file.Entries) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmptyCatalog)
	}

	seen := make(map[string]bool, len(file.Entries))
	for i, e := range file.Entries {
		if e.ID == "" {
			return nil, fmt.Errorf("%s: entry %d: %w: missing id", path, i, domain.ErrInvalidInput)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("%s: entry %d: %w: duplicate id %q", path, i, domain.ErrInvalidInput, e.ID)
		}
		seen[e.ID] = true
	}

	return &Catalog{entries: file.Entries}, nil
}

// All returns every entry in catalog order.
func (c *Catalog) All(ctx context.Context) ([]domain.SearchResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]domain.SearchResult, len(c.entries))
	copy(out, c.entries)
	return out, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

var defaultEntries = []domain.SearchResult{
	{
		ID:      "guide-next-routing",
		Title:   "Mastering Next.js App Router",
		Snippet: "Learn layout nesting, streaming, and data fetching with the App Router.",
	},
	{
		ID:      "guide-react-concurrency",
		Title:   "React 18 Concurrency Patterns",
		Snippet: "Understand Suspense, transitions, and building race-free UIs.",
	},
	{
		ID:      "article-accessibility",
		Title:   "Accessible Search Interfaces",
		Snippet: "Checklist for building inclusive search experiences with aria-live updates.",
	},
	{
		ID:      "whitepaper-performance",
		Title:   "Web Performance Playbook",
		Snippet: "Budgets, metrics, and practical steps for fast, resilient frontends.",
	},
	{
		ID:      "cookbook-design-systems",
		Title:   "Design Systems in Practice",
		Snippet: "Case studies on maintaining component libraries at scale.",
	},
	{
		ID:      "tutorial-caching",
		Title:   "Effective Client-Side Caching",
		Snippet: "Strategies for stale-while-revalidate and background refresh flows.",
	},
	{
		ID:      "reference-router",
		Title:   "Next.js Router Reference",
		Snippet: "API reference for navigation, search params, and history management.",
	},
	{
		ID:      "deep-dive-debounce",
		Title:   "Debounce Techniques Explained",
		Snippet: "Trade-offs between debounce, throttle, and idle callbacks.",
	},
	{
		ID:      "post-abort-controller",
		Title:   "AbortController in the Real World",
		Snippet: "Patterns for canceling fetch requests and avoiding race conditions.",
	},
	{
		ID:      "note-api-design",
		Title:   "Designing Resilient APIs",
		Snippet: "How to shape error payloads and pagination for consumer friendliness.",
	},
	{
		ID:      "guide-url-sync",
		Title:   "URL Synchronization Patterns",
		Snippet: "Sync component state with query parameters for deep-linking.",
	},
	{
		ID:      "handbook-testing",
		Title:   "Frontend Testing Handbook",
		Snippet: "A pragmatic overview of component, integration, and e2e testing.",
	},
	{
		ID:      "primer-user-research",
		Title:   "User Research Primer",
		Snippet: "Connect research insights to everyday product decisions.",
	},
	{
		ID:      "cheatsheet-css-modules",
		Title:   "CSS Modules Cheatsheet",
		Snippet: "Scoped styling tips, composition, and co-location best practices.",
	},
}
