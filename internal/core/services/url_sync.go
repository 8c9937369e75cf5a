package services

import (
	"net/url"
	"sync"

	"github.com/custodia-labs/searchbox/internal/core/domain"
	"github.com/custodia-labs/searchbox/internal/core/ports/driven"
	"github.com/custodia-labs/searchbox/internal/logger"
)

var syncLog = logger.For("url sync")

// DefaultQueryParam is the URL parameter carrying the committed query.
const DefaultQueryParam = "q"

// URLSynchronizer keeps a session's committed query and the navigator's
// query parameter in agreement. Typing writes the URL with Replace, and
// external location changes are adopted without waiting for the debounce.
type URLSynchronizer struct {
	nav     driven.Navigator
	session *Session
	param   string

	mu          sync.Mutex
	lastWritten string
	closed      bool

	unsubNav    func()
	unsubCommit func()
}

// NewURLSynchronizer binds session to nav. An empty param uses "q".
func NewURLSynchronizer(nav driven.Navigator, session *Session, param string) *URLSynchronizer {
	if param == "" {
		param = DefaultQueryParam
	}
	u := &URLSynchronizer{
		nav:     nav,
		session: session,
		param:   param,
	}

	initial := u.queryOf(nav.Location())
	u.lastWritten = initial

	u.unsubCommit = session.OnCommit(u.handleCommit)
	u.unsubNav = nav.Subscribe(u.handleLocation)

	committed := session.State().Query
	switch {
	case initial != "" && domain.NormalizeQuery(initial) != committed:
		syncLog.Debug("adopting %s=%q from location", param, initial)
		session.Navigate(initial)
	case initial == "" && committed != "":
		u.handleCommit(committed)
	}

	return u
}

// Close detaches from both the session and the navigator.
func (u *URLSynchronizer) Close() {
	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		return
	}
	u.closed = true
	u.mu.Unlock()

	u.unsubCommit()
	u.unsubNav()
}

// handleCommit mirrors an input-driven commit into the location.
func (u *URLSynchronizer) handleCommit(query string) {
	u.mu.Lock()
	if u.closed {
		u.mu.Unlock()
		return
	}
	u.lastWritten = query
	u.mu.Unlock()

	current := u.nav.Location()
	next := withParam(current, u.param, query)
	if next.String() == current.String() {
		return
	}

	// Replace notifies synchronously; handleLocation sees lastWritten and
	// treats the change as an echo.
	if err := u.nav.Replace(next); err != nil {
		syncLog.Warn("replace %s failed: %v", next, err)
	}
}

// handleLocation adopts an external change of the query parameter.
func (u *URLSynchronizer) handleLocation(loc *url.URL) {
	q := u.queryOf(loc)

	u.mu.Lock()
	if u.closed || q == u.lastWritten {
		u.mu.Unlock()
		return
	}
	u.lastWritten = q
	u.mu.Unlock()

	syncLog.Debug("location changed %s=%q", u.param, q)
	u.session.Navigate(q)
}

func (u *URLSynchronizer) queryOf(loc *url.URL) string {
	if loc == nil {
		return ""
	}
	return loc.Query().Get(u.param)
}

// withParam returns a copy of loc with param set to value, or removed when
// value is empty. Other parameters and the path are kept.
func withParam(loc *url.URL, param, value string) *url.URL {
	next := &url.URL{Path: "/"}
	if loc != nil {
		cp := *loc
		next = &cp
	}
	values := next.Query()
	if value == "" {
		values.Del(param)
	} else {
		values.Set(param, value)
	}
	next.RawQuery = values.Encode()
	return next
}
