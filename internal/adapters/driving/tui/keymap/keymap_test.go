package keymap

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		keys []string
		want []string
	}{
		{name: "quit", keys: km.Quit.Keys(), want: []string{"esc", "ctrl+c"}},
		{name: "submit", keys: km.Submit.Keys(), want: []string{"enter"}},
		{name: "retry", keys: km.Retry.Keys(), want: []string{"ctrl+r"}},
		{name: "clear", keys: km.Clear.Keys(), want: []string{"ctrl+u"}},
		{name: "back", keys: km.Back.Keys(), want: []string{"alt+left"}},
		{name: "forward", keys: km.Forward.Keys(), want: []string{"alt+right"}},
		{name: "up", keys: km.Up.Keys(), want: []string{"up"}},
		{name: "down", keys: km.Down.Keys(), want: []string{"down"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ElementsMatch(t, tt.want, tt.keys)
		})
	}
}

func TestDefaultKeyMap_NoPrintableKeys(t *testing.T) {
	km := DefaultKeyMap()

	for _, group := range km.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				assert.Greater(t, len(k), 1, "binding %q would swallow typed text", k)
			}
		}
	}
}

func TestKeyMap_Help(t *testing.T) {
	km := DefaultKeyMap()

	assert.Len(t, km.ShortHelp(), 4)
	assert.Len(t, km.ResultsHelp(), 4)
	assert.Contains(t, km.ErrorHelp(), km.Retry)
	assert.Len(t, km.FullHelp(), 3)
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name string
		msg  tea.KeyMsg
		want bool
	}{
		{name: "alt+left matches back", msg: tea.KeyMsg{Type: tea.KeyLeft, Alt: true}, want: true},
		{name: "plain left does not", msg: tea.KeyMsg{Type: tea.KeyLeft}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.msg.String(), km.Back))
		})
	}

	assert.True(t, Matches("ctrl+r", km.Retry))
	assert.False(t, Matches("r", km.Retry))
	assert.True(t, Matches("esc", km.Quit))
}
