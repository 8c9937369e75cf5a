package mcp

import (
	"github.com/custodia-labs/searchbox/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the MCP server.
type Ports struct {
	// Search answers the search tool and the search resource template.
	Search driving.SearchService

	// Settings backs the settings resource. Optional.
	Settings driving.SettingsService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Search == nil {
		return ErrMissingSearchService
	}
	return nil
}
