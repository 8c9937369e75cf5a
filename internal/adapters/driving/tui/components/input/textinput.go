// Package input provides the search input component for the TUI.
package input

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/searchbox/internal/adapters/driving/tui/styles"
)

// Placeholder is shown while the input is empty.
const Placeholder = "Search docs, guides and posts..."

// CharLimit caps the query length.
const CharLimit = 256

// SearchInput wraps a bubbles textinput with search-specific styling.
// It is always focused: the search box has no other focus target.
type SearchInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	width     int
}

// NewSearchInput creates a new search input component.
func NewSearchInput(s *styles.Styles) *SearchInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.Placeholder = Placeholder
	ti.Prompt = "⌕ "
	ti.CharLimit = CharLimit
	ti.Width = 50
	ti.Focus()

	return &SearchInput{
		textinput: ti,
		styles:    s,
		width:     60,
	}
}

// Init starts the cursor blink.
func (s *SearchInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages and reports whether the value changed.
func (s *SearchInput) Update(msg tea.Msg) (*SearchInput, tea.Cmd, bool) {
	before := s.textinput.Value()
	var cmd tea.Cmd
	s.textinput, cmd = s.textinput.Update(msg)
	return s, cmd, s.textinput.Value() != before
}

// View renders the search input.
func (s *SearchInput) View() string {
	label := s.styles.Title.Render("Search ")
	field := s.styles.InputField.Render(s.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	return lipgloss.JoinHorizontal(lipgloss.Center, label, field)
}

// Value returns the current input value.
func (s *SearchInput) Value() string {
	return s.textinput.Value()
}

// SetValue replaces the value and moves the cursor to the end.
func (s *SearchInput) SetValue(value string) {
	s.textinput.SetValue(value)
	s.textinput.CursorEnd()
}

// Clear empties the input.
func (s *SearchInput) Clear() {
	s.textinput.Reset()
}

// Focused returns whether the input is focused.
func (s *SearchInput) Focused() bool {
	return s.textinput.Focused()
}

// SetWidth sets the width of the component.
func (s *SearchInput) SetWidth(width int) {
	s.width = width
	// label, prompt, border and padding
	s.textinput.Width = max(width-14, 20)
}

// Width returns the current width.
func (s *SearchInput) Width() int {
	return s.width
}
