// Package messages defines Bubbletea message types for the TUI.
// Messages represent events that flow through the Elm architecture.
package messages

import (
	"net/url"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/searchbox/internal/core/domain"
)

// StateChanged carries the latest session snapshot.
type StateChanged struct {
	State domain.SessionState
}

// LocationChanged carries the navigator's new location.
type LocationChanged struct {
	Location *url.URL
}

// ErrorOccurred signals that an error happened outside the session,
// e.g. a failed history write.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

// Mailbox hands values produced on other goroutines to the Bubbletea loop.
// It holds at most one value: a newer value replaces an unread one, so a
// slow renderer only ever sees the latest snapshot.
type Mailbox[T any] struct {
	mu     sync.Mutex
	ch     chan T
	done   chan struct{}
	closed bool
}

// NewMailbox creates an empty mailbox.
func NewMailbox[T any]() *Mailbox[T] {
	return &Mailbox[T]{
		ch:   make(chan T, 1),
		done: make(chan struct{}),
	}
}

// Put stores v, replacing any unread value. Put after Close is a no-op.
func (m *Mailbox[T]) Put(v T) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	select {
	case <-m.ch:
	default:
	}
	m.ch <- v
}

// Wait returns a command that blocks until a value arrives and wraps it
// into a message. After Close the command yields nil.
func (m *Mailbox[T]) Wait(wrap func(T) tea.Msg) tea.Cmd {
	return func() tea.Msg {
		select {
		case v := <-m.ch:
			return wrap(v)
		case <-m.done:
			return nil
		}
	}
}

// Close releases pending Wait commands.
func (m *Mailbox[T]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	m.closed = true
	close(m.done)
}
