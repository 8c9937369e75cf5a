package tui

import (
	"context"
	"net/url"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	navmemory "github.com/custodia-labs/searchbox/internal/adapters/driven/navigation/memory"
	"github.com/custodia-labs/searchbox/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/searchbox/internal/core/domain"
	"github.com/custodia-labs/searchbox/internal/core/services"
)

func newTestSession(t *testing.T, backend *MockSearchBackend) *services.Session {
	t.Helper()
	session := services.NewSession(backend, services.SessionOptions{
		Debounce: 300 * time.Millisecond,
		Clock:    clocktesting.NewFakeClock(time.Now()),
	})
	t.Cleanup(session.Close)
	return session
}

func routerBackend() *MockSearchBackend {
	return &MockSearchBackend{
		SearchFunc: func(_ context.Context, query string, _ domain.SearchOptions) (domain.SearchResponse, error) {
			if query != "router" {
				return domain.SearchResponse{Results: []domain.SearchResult{}}, nil
			}
			return domain.SearchResponse{Results: []domain.SearchResult{
				{ID: "guide-next-routing", Title: "Next.js Routing Guide", Snippet: "File-based routing"},
				{ID: "reference-router", Title: "Router Reference", Snippet: "API reference"},
			}}, nil
		},
	}
}

func newTestApp(t *testing.T, ports *Ports) *App {
	t.Helper()
	app, err := NewApp(ports)
	require.NoError(t, err)
	t.Cleanup(app.Close)
	app.SetDimensions(100, 30)
	return app
}

func typeText(app *App, text string) {
	for _, r := range text {
		app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

// receive runs cmd with a timeout.
func receive(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	require.NotNil(t, cmd)
	got := make(chan tea.Msg, 1)
	go func() { got <- cmd() }()
	select {
	case msg := <-got:
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

// pumpUntil feeds state messages into the app until the view shows status.
func pumpUntil(t *testing.T, app *App, status domain.Status) {
	t.Helper()
	for i := 0; i < 10; i++ {
		if app.SearchView().State().Status == status {
			return
		}
		app.Update(receive(t, app.waitState()))
	}
	t.Fatalf("view never reached %s, last %s", status, app.SearchView().State().Status)
}

func TestNewApp(t *testing.T) {
	t.Run("invalid ports", func(t *testing.T) {
		app, err := NewApp(&Ports{})

		assert.Nil(t, app)
		assert.ErrorIs(t, err, ErrMissingSession)
	})

	t.Run("success", func(t *testing.T) {
		app, err := NewApp(&Ports{Session: newTestSession(t, &MockSearchBackend{})})
		require.NoError(t, err)
		defer app.Close()

		assert.False(t, app.Ready())
		assert.Equal(t, "Initialising...", app.View())
		assert.NotNil(t, app.Init())
		assert.Nil(t, app.waitLocation(), "no history means no location feed")
	})
}

func TestApp_WithContext(t *testing.T) {
	app := newTestApp(t, &Ports{Session: newTestSession(t, &MockSearchBackend{})})

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
	assert.Equal(t, ctx, app.ctx)
}

func TestApp_WindowSize(t *testing.T) {
	app, err := NewApp(&Ports{Session: newTestSession(t, &MockSearchBackend{})})
	require.NoError(t, err)
	defer app.Close()

	app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.width)
	assert.Contains(t, app.View(), "searchbox")
}

func TestApp_TypeAndSubmit(t *testing.T) {
	app := newTestApp(t, &Ports{Session: newTestSession(t, routerBackend())})

	typeText(app, "router")
	app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	pumpUntil(t, app, domain.StatusSuccess)

	view := app.View()
	assert.Contains(t, view, "Next.js Routing Guide")
	assert.Contains(t, view, "Router Reference")
	assert.Contains(t, view, "Results updated. 2 results.")
}

func TestApp_NoResults(t *testing.T) {
	app := newTestApp(t, &Ports{Session: newTestSession(t, routerBackend())})

	typeText(app, "zzz")
	app.Update(tea.KeyMsg{Type: tea.KeyEnter})

	pumpUntil(t, app, domain.StatusNoResults)

	assert.Contains(t, app.View(), `Nothing found for "zzz".`)
}

func TestApp_ErrorAndRetry(t *testing.T) {
	calls := 0
	backend := &MockSearchBackend{
		SearchFunc: func(_ context.Context, _ string, _ domain.SearchOptions) (domain.SearchResponse, error) {
			calls++
			if calls == 1 {
				return domain.SearchResponse{}, domain.NewTransientError()
			}
			return domain.SearchResponse{Results: []domain.SearchResult{{ID: "a", Title: "A", Snippet: "a"}}}, nil
		},
	}
	session := newTestSession(t, backend)
	app := newTestApp(t, &Ports{Session: session})

	typeText(app, "css")
	app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	pumpUntil(t, app, domain.StatusError)
	assert.Contains(t, app.View(), domain.MessageTransientFailure)

	session.Wait()
	app.Update(tea.KeyMsg{Type: tea.KeyCtrlR})
	pumpUntil(t, app, domain.StatusSuccess)
	assert.Contains(t, app.View(), "Results updated. 1 result.")
}

func TestApp_HistoryNavigation(t *testing.T) {
	history, err := navmemory.NewHistory("/?q=router")
	require.NoError(t, err)
	session := newTestSession(t, routerBackend())
	syncer := services.NewURLSynchronizer(history, session, "")
	t.Cleanup(syncer.Close)

	app := newTestApp(t, &Ports{Session: session, History: history})
	pumpUntil(t, app, domain.StatusSuccess)
	assert.Equal(t, "router", app.SearchView().Input())

	app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NoError(t, history.Replace(&url.URL{Path: "/", RawQuery: "q=zzz"}))

	msg := receive(t, app.waitLocation())
	require.IsType(t, messages.LocationChanged{}, msg)
	app.Update(msg)
	pumpUntil(t, app, domain.StatusNoResults)
	assert.Equal(t, "zzz", app.SearchView().Input())
	assert.Contains(t, app.View(), "/?q=zzz")

	session.Wait()
	app.Update(tea.KeyMsg{Type: tea.KeyLeft, Alt: true})
	pumpUntil(t, app, domain.StatusSuccess)
	assert.Equal(t, "router", app.SearchView().Input())
}

func TestApp_QuitKeys(t *testing.T) {
	app := newTestApp(t, &Ports{Session: newTestSession(t, &MockSearchBackend{})})

	for _, msg := range []tea.Msg{
		tea.KeyMsg{Type: tea.KeyCtrlC},
		tea.KeyMsg{Type: tea.KeyEsc},
		messages.Quit{},
	} {
		_, cmd := app.Update(msg)
		require.NotNil(t, cmd)
		assert.IsType(t, tea.QuitMsg{}, cmd())
	}
}

func TestApp_Close(t *testing.T) {
	app, err := NewApp(&Ports{Session: newTestSession(t, &MockSearchBackend{})})
	require.NoError(t, err)

	app.Close()

	assert.Nil(t, receive(t, app.waitState()))
}
