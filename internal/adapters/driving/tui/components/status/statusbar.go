// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/searchbox/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/searchbox/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/searchbox/internal/core/domain"
)

// Bar announces the session status on the left and keybinding hints on
// the right. It always shows exactly one announcement.
type Bar struct {
	styles      *styles.Styles
	keymap      *keymap.KeyMap
	status      domain.Status
	resultCount int
	width       int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		status: domain.StatusIdle,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the bar is driven through its setters.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := max(s.width-lipgloss.Width(left)-lipgloss.Width(right)-2, 1)

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// Announcement returns the plain text of the status region.
func (s *Bar) Announcement() string {
	msg := s.status.Message()
	if s.status == domain.StatusSuccess {
		noun := "results"
		if s.resultCount == 1 {
			noun = "result"
		}
		return fmt.Sprintf("%s %d %s.", msg, s.resultCount, noun)
	}
	return msg
}

func (s *Bar) renderLeft() string {
	text := s.Announcement()
	switch s.status {
	case domain.StatusError:
		return s.styles.Error.Render(text)
	case domain.StatusSuccess:
		return s.styles.Success.Render(text)
	case domain.StatusIdle, domain.StatusLoading, domain.StatusNoResults:
		return s.styles.Muted.Render(text)
	}
	return s.styles.Muted.Render(text)
}

func (s *Bar) renderRight() string {
	var bindings []key.Binding
	switch {
	case s.status == domain.StatusError:
		bindings = s.keymap.ErrorHelp()
	case s.resultCount > 0:
		bindings = s.keymap.ResultsHelp()
	default:
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Help.Render(strings.Join(hints, " | "))
}

// SetStatus sets the session status and the number of visible results.
func (s *Bar) SetStatus(status domain.Status, resultCount int) {
	s.status = status
	s.resultCount = resultCount
}

// Status returns the current status.
func (s *Bar) Status() domain.Status {
	return s.status
}

// ResultCount returns the current result count.
func (s *Bar) ResultCount() int {
	return s.resultCount
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}
