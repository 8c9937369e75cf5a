// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the search box. Printable keys always
// go to the input, so every binding here uses a modifier or a special key.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Submit commits the input without waiting for the debounce delay.
	Submit key.Binding

	// Retry re-issues a failed search.
	Retry key.Binding

	// Clear empties the input.
	Clear key.Binding

	// Back moves to the previous history entry.
	Back key.Binding

	// Forward moves to the next history entry.
	Forward key.Binding

	// Up moves the result selection up.
	Up key.Binding

	// Down moves the result selection down.
	Down key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("esc", "quit"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search now"),
		),
		Retry: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "retry"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "clear"),
		),
		Back: key.NewBinding(
			key.WithKeys("alt+left"),
			key.WithHelp("alt+←", "back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("alt+right"),
			key.WithHelp("alt+→", "forward"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
	}
}

// ShortHelp returns the hints shown while typing.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Back, k.Forward, k.Quit}
}

// ResultsHelp returns the hints shown when results are listed.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Clear, k.Quit}
}

// ErrorHelp returns the hints shown after a failed search.
func (k *KeyMap) ErrorHelp() []key.Binding {
	return []key.Binding{k.Retry, k.Clear, k.Quit}
}

// FullHelp returns the full list of keybindings.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Submit},
		{k.Retry, k.Clear},
		{k.Back, k.Forward, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
