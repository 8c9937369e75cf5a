package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()

	require.NotNil(t, theme)
	for name, c := range map[string]lipgloss.Color{
		"primary":    theme.Primary,
		"link":       theme.Link,
		"foreground": theme.Foreground,
		"muted":      theme.Muted,
		"success":    theme.Success,
		"error":      theme.Error,
		"border":     theme.Border,
		"bar":        theme.Bar,
	} {
		assert.NotEmpty(t, string(c), name)
	}
}

func TestDefaultTheme_AccentsAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	accents := []lipgloss.Color{theme.Primary, theme.Link, theme.Success, theme.Error}

	seen := make(map[string]bool)
	for _, c := range accents {
		assert.False(t, seen[string(c)], "duplicate accent: %s", c)
		seen[string(c)] = true
	}
}

func TestNewStyles(t *testing.T) {
	t.Run("with theme", func(t *testing.T) {
		theme := DefaultTheme()
		styles := NewStyles(theme)

		require.NotNil(t, styles)
		assert.Equal(t, theme, styles.Theme())
	})

	t.Run("nil theme uses default", func(t *testing.T) {
		styles := NewStyles(nil)

		require.NotNil(t, styles)
		assert.Equal(t, DefaultTheme(), styles.Theme())
	})
}

func TestStyles_AllStylesInitialised(t *testing.T) {
	styles := DefaultStyles()

	for name, style := range map[string]lipgloss.Style{
		"Title":      styles.Title,
		"Location":   styles.Location,
		"Normal":     styles.Normal,
		"Muted":      styles.Muted,
		"Snippet":    styles.Snippet,
		"Selected":   styles.Selected,
		"Error":      styles.Error,
		"Success":    styles.Success,
		"InputField": styles.InputField,
		"StatusBar":  styles.StatusBar,
		"Help":       styles.Help,
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotEqual(t, lipgloss.Style{}, style)
			assert.NotEmpty(t, style.Render("test text"))
		})
	}
}
