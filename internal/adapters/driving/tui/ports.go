// Package tui provides an interactive terminal search box for searchbox.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/searchbox/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces used by the TUI.
type Ports struct {
	// Session is the search session the box drives.
	Session driving.SearchSession

	// History is the navigator behind the location bar. Optional.
	History driving.History
}

// NewPorts creates a new Ports aggregate with the given services.
func NewPorts(session driving.SearchSession, history driving.History) *Ports {
	return &Ports{
		Session: session,
		History: history,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Session == nil {
		return ErrMissingSession
	}
	return nil
}
