// Package memory provides an in-memory navigator with browser-style
// history semantics.
package memory

import (
	"errors"
	"net/url"
	"sync"

	"github.com/custodia-labs/searchbox/internal/core/ports/driven"
)

// Ensure History implements the interface.
var _ driven.Navigator = (*History)(nil)

// ErrNilLocation is returned when Replace or Push is given a nil URL.
var ErrNilLocation = errors.New("nil location")

type subscriber struct {
	id uint64
	fn func(*url.URL)
}

// History is a stack of locations with a cursor, like window.history.
// Every location change notifies subscribers, including Replace.
type History struct {
	mu      sync.Mutex
	entries []url.URL
	index   int
	nextID  uint64
	subs    []subscriber
}

// NewHistory creates a history whose single entry is initial.
func NewHistory(initial string) (*History, error) {
	u, err := url.Parse(initial)
	if err != nil {
		return nil, err
	}
	if u.Path == "" {
		u.Path = "/"
	}
	return &History{entries: []url.URL{*u}}, nil
}

// Location returns a copy of the current location.
func (h *History) Location() *url.URL {
	h.mu.Lock()
	defer h.mu.Unlock()
	loc := h.entries[h.index]
	return &loc
}

// Replace swaps the current entry without adding a new one.
func (h *History) Replace(u *url.URL) error {
	if u == nil {
		return ErrNilLocation
	}
	h.mu.Lock()
	h.entries[h.index] = *u
	h.mu.Unlock()

	h.notify()
	return nil
}

// Push adds a new entry after the current one. Forward entries are dropped.
func (h *History) Push(u *url.URL) error {
	if u == nil {
		return ErrNilLocation
	}
	h.mu.Lock()
	h.entries = append(h.entries[:h.index+1], *u)
	h.index++
	h.mu.Unlock()

	h.notify()
	return nil
}

// Back moves to the previous entry. It reports false at the start.
func (h *History) Back() bool {
	return h.move(-1)
}

// Forward moves to the next entry. It reports false at the end.
func (h *History) Forward() bool {
	return h.move(1)
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

// Subscribe registers fn for location changes and returns an unsubscribe func.
func (h *History) Subscribe(fn func(*url.URL)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.nextID++
	id := h.nextID
	h.subs = append(h.subs, subscriber{id: id, fn: fn})

	return func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		for i, s := range h.subs {
			if s.id == id {
				h.subs = append(h.subs[:i], h.subs[i+1:]...)
				return
			}
		}
	}
}

func (h *History) move(delta int) bool {
	h.mu.Lock()
	next := h.index + delta
	if next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return false
	}
	h.index = next
	h.mu.Unlock()

	h.notify()
	return true
}

// notify delivers the current location outside the lock so subscribers
// may call back into the history.
func (h *History) notify() {
	h.mu.Lock()
	loc := h.entries[h.index]
	subs := make([]subscriber, len(h.subs))
	copy(subs, h.subs)
	h.mu.Unlock()

	for _, s := range subs {
		cp := loc
		s.fn(&cp)
	}
}
