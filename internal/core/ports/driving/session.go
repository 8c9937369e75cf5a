package driving

import (
	"net/url"

	"github.com/custodia-labs/searchbox/internal/core/domain"
)

// SearchSession is an interactive search box: keystrokes go in, state
// snapshots come out.
type SearchSession interface {
	// SetInput records the raw input value after a keystroke.
	SetInput(raw string)

	// Flush commits pending input without waiting for the debounce delay.
	Flush()

	// Retry re-issues the committed query after a failure.
	// It reports whether a request was issued.
	Retry() bool

	// State returns the current snapshot.
	State() domain.SessionState

	// Input returns the raw input value, which navigation may have changed.
	Input() string

	// Subscribe registers fn for every state change and returns an
	// unsubscribe func.
	Subscribe(fn func(domain.SessionState)) func()
}

// History is the user-facing side of the navigator: a location with
// back and forward entries.
type History interface {
	// Location returns a copy of the current location.
	Location() *url.URL

	// Push adds a new entry after the current one.
	Push(u *url.URL) error

	// Back moves to the previous entry. It reports whether it moved.
	Back() bool

	// Forward moves to the next entry. It reports whether it moved.
	Forward() bool

	// Subscribe registers fn for every location change and returns an
	// unsubscribe func.
	Subscribe(fn func(*url.URL)) func()
}
