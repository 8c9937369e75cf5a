// Package search provides the search box view for the TUI.
package search

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/searchbox/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/searchbox/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/searchbox/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/searchbox/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/searchbox/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/searchbox/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/searchbox/internal/core/domain"
	"github.com/custodia-labs/searchbox/internal/core/ports/driving"
	"github.com/custodia-labs/searchbox/internal/logger"
)

var log = logger.For("tui")

// View renders a session: location bar, input, results and status bar.
// It forwards keystrokes to the session and draws whatever snapshot the
// session last published.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	input     *input.SearchInput
	list      *list.ResultList
	statusbar *status.Bar

	session driving.SearchSession
	history driving.History

	state      domain.SessionState
	location   string
	lastPushed string
	err        error

	width  int
	height int
}

// NewView creates a search view bound to session. history may be nil,
// which disables the location bar and back/forward.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	session driving.SearchSession,
	history driving.History,
) (*View, error) {
	if session == nil {
		return nil, ErrNoSession
	}
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	v := &View{
		styles:    s,
		keymap:    km,
		input:     input.NewSearchInput(s),
		list:      list.NewResultList(s),
		statusbar: status.NewBar(s, km),
		session:   session,
		history:   history,
		width:     80,
		height:    24,
	}
	if history != nil {
		v.location = history.Location().String()
	}
	v.input.SetValue(session.Input())
	v.apply(session.State())
	return v, nil
}

// Init starts the cursor blink.
func (v *View) Init() tea.Cmd {
	return v.input.Init()
}

// Update handles messages for the search view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.StateChanged:
		v.apply(msg.State)
		return v, nil

	case messages.LocationChanged:
		if msg.Location != nil {
			v.location = msg.Location.String()
		}
		v.syncInput()
		return v, nil

	case messages.ErrorOccurred:
		v.err = msg.Err
		return v, nil
	}

	var cmd tea.Cmd
	v.input, cmd, _ = v.input.Update(msg)
	return v, cmd
}

func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	keyStr := msg.String()

	switch {
	case keymap.Matches(keyStr, v.keymap.Quit):
		return v, tea.Quit

	case keymap.Matches(keyStr, v.keymap.Submit):
		v.session.Flush()
		v.pushHistory()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Retry):
		if !v.session.Retry() {
			log.Debug("retry ignored in %s", v.state.Status)
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Clear):
		v.input.Clear()
		v.session.SetInput("")
		v.session.Flush()
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Back):
		if v.history != nil && !v.history.Back() {
			log.Debug("no earlier history entry")
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Forward):
		if v.history != nil && !v.history.Forward() {
			log.Debug("no later history entry")
		}
		return v, nil

	case keymap.Matches(keyStr, v.keymap.Up), keymap.Matches(keyStr, v.keymap.Down):
		v.list, _ = v.list.Update(msg)
		return v, nil
	}

	var cmd tea.Cmd
	var changed bool
	v.input, cmd, changed = v.input.Update(msg)
	if changed {
		v.err = nil
		v.session.SetInput(v.input.Value())
	}
	return v, cmd
}

// pushHistory records the current location as a new entry so that back
// returns to it after further typing.
func (v *View) pushHistory() {
	if v.history == nil {
		return
	}
	loc := v.history.Location()
	if loc.String() == v.lastPushed {
		return
	}
	if err := v.history.Push(loc); err != nil {
		v.err = fmt.Errorf("push history: %w", err)
		return
	}
	v.lastPushed = loc.String()
}

// apply adopts a session snapshot.
func (v *View) apply(state domain.SessionState) {
	v.state = state
	v.list.SetResults(state.Results)
	v.list.SetStale(state.Status == domain.StatusLoading)
	v.statusbar.SetStatus(state.Status, len(state.Results))
	v.syncInput()
}

// syncInput copies the session's raw input into the field when navigation
// replaced it.
func (v *View) syncInput() {
	if in := v.session.Input(); in != v.input.Value() {
		v.input.SetValue(in)
	}
}

// View renders the search view.
func (v *View) View() string {
	sections := []string{v.styles.Title.Render("searchbox")}
	if v.history != nil {
		sections = append(sections, v.styles.Muted.Render("at ")+v.styles.Location.Render(v.location))
	}
	sections = append(sections, v.input.View(), v.renderBody())
	if v.err != nil {
		sections = append(sections, v.styles.Error.Render(v.err.Error()))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)
	gap := max(v.height-lipgloss.Height(content)-1, 0)

	return content + strings.Repeat("\n", gap+1) + v.statusbar.View()
}

func (v *View) renderBody() string {
	switch v.state.Status {
	case domain.StatusIdle:
		return v.styles.Muted.Render("Start typing to search the catalog.")
	case domain.StatusLoading:
		if v.list.IsEmpty() {
			return v.styles.Muted.Render("Searching...")
		}
		return v.list.View()
	case domain.StatusNoResults:
		return v.styles.Muted.Render(fmt.Sprintf("Nothing found for %q.", v.state.Query))
	case domain.StatusError:
		hint := v.keymap.Retry.Help()
		return v.styles.Error.Render(v.state.ErrorMessage) + "\n" +
			v.styles.Help.Render(fmt.Sprintf("Press %s to %s.", hint.Key, hint.Desc))
	case domain.StatusSuccess:
		return v.list.View()
	}
	return ""
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.input.SetWidth(width)
	v.statusbar.SetWidth(width)
	// title, location, input (3 rows with border) and status bar
	v.list.SetDimensions(width, max(height-7, 2))
}

// State returns the snapshot currently drawn.
func (v *View) State() domain.SessionState {
	return v.state
}

// Input returns the text in the input field.
func (v *View) Input() string {
	return v.input.Value()
}

// Location returns the location bar text.
func (v *View) Location() string {
	return v.location
}

// SelectedResult returns the highlighted result, or nil.
func (v *View) SelectedResult() *domain.SearchResult {
	return v.list.SelectedResult()
}

// Announcement returns the status region text.
func (v *View) Announcement() string {
	return v.statusbar.Announcement()
}

// Err returns the last adapter error, if any.
func (v *View) Err() error {
	return v.err
}
