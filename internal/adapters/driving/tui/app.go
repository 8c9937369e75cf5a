package tui

import (
	"context"
	"fmt"
	"net/url"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/searchbox/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/searchbox/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/searchbox/internal/adapters/driving/tui/views/search"
	"github.com/custodia-labs/searchbox/internal/core/domain"
)

// App is the TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles

	searchView *search.View

	// Session and history callbacks run on other goroutines; mailboxes
	// carry their latest values into the update loop.
	states    *messages.Mailbox[domain.SessionState]
	locations *messages.Mailbox[*url.URL]
	unsubs    []func()

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a TUI application bound to the session in ports.
// Close must be called to detach it.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	a := &App{
		ports:     ports,
		ctx:       context.Background(),
		styles:    styles.DefaultStyles(),
		states:    messages.NewMailbox[domain.SessionState](),
		locations: messages.NewMailbox[*url.URL](),
	}

	// Subscribe before the view reads its first snapshot so no change
	// in between is lost.
	a.unsubs = append(a.unsubs, ports.Session.Subscribe(a.states.Put))
	if ports.History != nil {
		a.unsubs = append(a.unsubs, ports.History.Subscribe(a.locations.Put))
	}

	searchView, err := search.NewView(a.styles, nil, ports.Session, ports.History)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("creating app: %w", err)
	}
	a.searchView = searchView

	return a, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("searchbox"),
		a.searchView.Init(),
		a.waitState(),
		a.waitLocation(),
	)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}

	case messages.StateChanged:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, tea.Batch(cmd, a.waitState())

	case messages.LocationChanged:
		a.searchView, cmd = a.searchView.Update(msg)
		return a, tea.Batch(cmd, a.waitLocation())

	case messages.Quit:
		return a, tea.Quit
	}

	a.searchView, cmd = a.searchView.Update(msg)
	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}
	return a.searchView.View()
}

func (a *App) waitState() tea.Cmd {
	return a.states.Wait(func(s domain.SessionState) tea.Msg {
		return messages.StateChanged{State: s}
	})
}

func (a *App) waitLocation() tea.Cmd {
	if a.ports.History == nil {
		return nil
	}
	return a.locations.Wait(func(u *url.URL) tea.Msg {
		return messages.LocationChanged{Location: u}
	})
}

// Run starts the TUI and blocks until the user quits or the context is
// cancelled. The app is closed on return.
func (a *App) Run() error {
	defer a.Close()

	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	if err != nil && a.ctx.Err() != nil {
		return nil
	}
	return err
}

// Close detaches the app from the session and history.
func (a *App) Close() {
	for _, unsub := range a.unsubs {
		unsub()
	}
	a.unsubs = nil
	a.states.Close()
	a.locations.Close()
}

// SearchView returns the search view.
func (a *App) SearchView() *search.View {
	return a.searchView
}

// Ready returns whether the app has received its first window size.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.searchView.SetDimensions(width, height)
}
