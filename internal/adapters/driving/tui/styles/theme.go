// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colour palette for the search box.
type Theme struct {
	// Primary is the accent used for the title and the selection.
	Primary lipgloss.Color

	// Link colours the location bar.
	Link lipgloss.Color

	// Foreground is the default text colour.
	Foreground lipgloss.Color

	// Muted is for snippets, hints and placeholders.
	Muted lipgloss.Color

	// Success colours the result count.
	Success lipgloss.Color

	// Error colours failure messages.
	Error lipgloss.Color

	// Border is the input border colour.
	Border lipgloss.Color

	// Bar is the status bar background.
	Bar lipgloss.Color
}

// DefaultTheme returns the default colour theme.
func DefaultTheme() *Theme {
	return &Theme{
		Primary:    lipgloss.Color("#2563EB"),
		Link:       lipgloss.Color("#0EA5E9"),
		Foreground: lipgloss.Color("#E5E7EB"),
		Muted:      lipgloss.Color("#6B7280"),
		Success:    lipgloss.Color("#22C55E"),
		Error:      lipgloss.Color("#EF4444"),
		Border:     lipgloss.Color("#374151"),
		Bar:        lipgloss.Color("#111827"),
	}
}

// Styles contains pre-configured lipgloss styles.
type Styles struct {
	theme *Theme

	// Title renders the application header.
	Title lipgloss.Style

	// Location renders the current URL.
	Location lipgloss.Style

	// Normal renders result titles.
	Normal lipgloss.Style

	// Muted renders less important text.
	Muted lipgloss.Style

	// Snippet renders the line under a result title.
	Snippet lipgloss.Style

	// Selected renders the highlighted result.
	Selected lipgloss.Style

	// Error renders failure messages.
	Error lipgloss.Style

	// Success renders the result count.
	Success lipgloss.Style

	// InputField wraps the search input.
	InputField lipgloss.Style

	// StatusBar renders the bottom status line.
	StatusBar lipgloss.Style

	// Help renders keybinding hints.
	Help lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}

	return &Styles{
		theme: theme,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Primary),

		Location: lipgloss.NewStyle().
			Underline(true).
			Foreground(theme.Link),

		Normal: lipgloss.NewStyle().
			Foreground(theme.Foreground),

		Muted: lipgloss.NewStyle().
			Foreground(theme.Muted),

		Snippet: lipgloss.NewStyle().
			Italic(true).
			Foreground(theme.Muted),

		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Foreground).
			Background(theme.Primary),

		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Error),

		Success: lipgloss.NewStyle().
			Foreground(theme.Success),

		InputField: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Border).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(theme.Muted).
			Background(theme.Bar).
			Padding(0, 1),

		Help: lipgloss.NewStyle().
			Foreground(theme.Muted),
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}
