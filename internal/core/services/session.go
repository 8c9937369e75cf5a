package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"k8s.io/utils/clock"

	"github.com/custodia-labs/searchbox/internal/core/domain"
	"github.com/custodia-labs/searchbox/internal/core/ports/driven"
	"github.com/custodia-labs/searchbox/internal/logger"
)

// SessionOptions configures a search session.
type SessionOptions struct {
	// Debounce is how long input must be stable before it is committed.
	// Defaults to domain.DefaultDebounce; a negative value disables debouncing.
	Debounce time.Duration

	// Limit is forwarded to the backend. Defaults to domain.DefaultLimit.
	Limit int

	// InitialQuery, when non-empty after normalisation, is committed
	// immediately and the session starts in loading.
	InitialQuery string

	// Clock drives the debounce timer. Defaults to the real clock.
	Clock clock.WithDelayedExecution

	// Context is the parent of every request. Defaults to context.Background.
	Context context.Context
}

// commitOrigin records why the committed query changed.
type commitOrigin int

const (
	originInput commitOrigin = iota
	originNavigation
	originInitial
)

func (o commitOrigin) String() string {
	switch o {
	case originInput:
		return "input"
	case originNavigation:
		return "navigation"
	case originInitial:
		return "initial"
	default:
		return "unknown"
	}
}

type stateListener struct {
	id uint64
	fn func(domain.SessionState)
}

type commitListener struct {
	id uint64
	fn func(string)
}

// Session is the search session controller. It owns SessionState and is
// the only component that mutates it. A response may only update state
// when its epoch still equals the session's current epoch.
type Session struct {
	id        string
	log       logger.Scope
	backend   driven.SearchBackend
	limit     int
	runner    *RequestRunner[domain.SearchResponse]
	debouncer *Debouncer[string]
	ctx       context.Context
	cancel    context.CancelFunc

	mu        sync.Mutex
	epoch     uint64
	input     string
	committed string
	state     domain.SessionState
	closed    bool

	listenersMu     sync.Mutex
	nextListenerID  uint64
	stateListeners  []stateListener
	commitListeners []commitListener

	// notifyMu serialises deliveries so listeners observe snapshots in order.
	notifyMu sync.Mutex
	wg       sync.WaitGroup
}

// NewSession creates a search session bound to backend.
func NewSession(backend driven.SearchBackend, opts SessionOptions) *Session {
	if opts.Debounce == 0 {
		opts.Debounce = domain.DefaultDebounce
	}
	if opts.Debounce < 0 {
		opts.Debounce = 0
	}
	if opts.Limit == 0 {
		opts.Limit = domain.DefaultLimit
	}
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)

	id := uuid.New().String()
	s := &Session{
		id:      id,
		log:     logger.For("session " + id[:8]),
		backend: backend,
		limit:   opts.Limit,
		runner:  NewRequestRunner[domain.SearchResponse](),
		ctx:     ctx,
		cancel:  cancel,
		state:   domain.IdleState(),
	}
	s.debouncer = NewDebouncer(opts.Debounce, opts.Clock, func(q string) {
		s.commit(q, originInput)
	})

	s.log.Debug("created (debounce=%s, limit=%d)", opts.Debounce, opts.Limit)

	if initial := domain.NormalizeQuery(opts.InitialQuery); initial != "" {
		s.mu.Lock()
		s.input = opts.InitialQuery
		s.mu.Unlock()
		s.commit(initial, originInitial)
	}

	return s
}

// ID returns the session identifier used in log lines.
func (s *Session) ID() string {
	return s.id
}

// SetInput records a keystroke. The normalised value is committed once it
// has been stable for the debounce delay.
func (s *Session) SetInput(raw string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.input = raw
	s.mu.Unlock()

	s.debouncer.Set(domain.NormalizeQuery(raw))
}

// Flush commits pending input immediately instead of waiting for the delay.
func (s *Session) Flush() {
	s.debouncer.Flush()
}

// Navigate adopts a query from an external location change. It bypasses
// the debounce delay and does not notify commit listeners.
func (s *Session) Navigate(raw string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.input = raw
	s.mu.Unlock()

	s.debouncer.Cancel()
	s.commit(domain.NormalizeQuery(raw), originNavigation)
}

// Retry re-issues the last committed query. It only acts from the error
// status and reports whether a request was issued.
func (s *Session) Retry() bool {
	s.mu.Lock()
	if s.closed || s.state.Status != domain.StatusError || s.committed == "" {
		s.mu.Unlock()
		return false
	}
	query := s.committed
	epoch, ticket := s.beginLoadingLocked()
	s.mu.Unlock()

	s.log.Info("retry %q (epoch %d)", query, epoch)
	s.notify()
	s.issue(epoch, query, ticket)
	return true
}

// State returns a snapshot of the current state.
func (s *Session) State() domain.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Input returns the raw input value.
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// Subscribe registers fn to receive the latest snapshot after every state
// change. Deliveries are serialised, so fn must not call back into the
// session synchronously. It returns an unsubscribe func.
func (s *Session) Subscribe(fn func(domain.SessionState)) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	s.nextListenerID++
	id := s.nextListenerID
	s.stateListeners = append(s.stateListeners, stateListener{id: id, fn: fn})

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		for i, l := range s.stateListeners {
			if l.id == id {
				s.stateListeners = append(s.stateListeners[:i], s.stateListeners[i+1:]...)
				return
			}
		}
	}
}

// OnCommit registers fn to be called when typing changes the committed
// query. Navigation-driven commits are not reported.
func (s *Session) OnCommit(fn func(query string)) func() {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()

	s.nextListenerID++
	id := s.nextListenerID
	s.commitListeners = append(s.commitListeners, commitListener{id: id, fn: fn})

	return func() {
		s.listenersMu.Lock()
		defer s.listenersMu.Unlock()
		for i, l := range s.commitListeners {
			if l.id == id {
				s.commitListeners = append(s.commitListeners[:i], s.commitListeners[i+1:]...)
				return
			}
		}
	}
}

// Close tears the session down: pending input is discarded, the live
// request is cancelled and no further state changes are applied.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.epoch++
	s.mu.Unlock()

	s.debouncer.Stop()
	s.runner.Close()
	s.cancel()

	s.log.Debug("closed")
}

// Wait blocks until every issued request has returned. Intended for
// one-shot callers and tests.
func (s *Session) Wait() {
	s.wg.Wait()
}

// commit applies a new committed query.
func (s *Session) commit(query string, origin commitOrigin) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if query == s.committed && (query != "" || s.state.Status == domain.StatusIdle) {
		s.mu.Unlock()
		return
	}
	s.committed = query

	if query == "" {
		s.epoch++
		s.state = domain.IdleState()
		s.runner.Cancel()
		s.mu.Unlock()

		s.log.Debug("cleared (%s)", origin)
		s.notify()
		s.notifyCommit(query, origin)
		return
	}

	epoch, ticket := s.beginLoadingLocked()
	s.mu.Unlock()

	s.log.Debug("commit %q (%s, epoch %d)", query, origin, epoch)
	s.notify()
	s.notifyCommit(query, origin)
	s.issue(epoch, query, ticket)
}

// beginLoadingLocked advances the epoch, enters loading and claims the
// runner slot, cancelling the previous request. The epoch bump and the
// claim both happen under s.mu, so runner order always matches epoch
// order. Results from the previous query stay visible; the error is
// cleared.
func (s *Session) beginLoadingLocked() (uint64, *Ticket[domain.SearchResponse]) {
	s.epoch++
	s.state.Status = domain.StatusLoading
	s.state.Query = s.committed
	s.state.ErrorMessage = ""
	s.wg.Add(1)
	return s.epoch, s.runner.Start(s.ctx)
}

// issue completes ticket for epoch in the background.
func (s *Session) issue(epoch uint64, query string, ticket *Ticket[domain.SearchResponse]) {
	go func() {
		defer s.wg.Done()

		resp, live, err := ticket.Do(func(ctx context.Context) (domain.SearchResponse, error) {
			return s.backend.Search(ctx, query, domain.SearchOptions{Limit: s.limit})
		})
		s.settle(epoch, query, resp, live, err)
	}()
}

// settle applies a request outcome if it is still authoritative.
func (s *Session) settle(epoch uint64, query string, resp domain.SearchResponse, live bool, err error) {
	s.mu.Lock()
	if !live || s.closed || epoch != s.epoch {
		s.mu.Unlock()
		s.log.Debug("discarded response for %q (epoch %d)", query, epoch)
		return
	}

	if err != nil {
		s.state = domain.SessionState{
			Status:       domain.StatusError,
			Query:        query,
			ErrorMessage: domain.UserMessage(err),
		}
		s.mu.Unlock()
		s.log.Warn("search %q failed: %v", query, err)
		s.notify()
		return
	}

	results := make([]domain.SearchResult, len(resp.Results))
	copy(results, resp.Results)
	status := domain.StatusSuccess
	if len(results) == 0 {
		status = domain.StatusNoResults
	}
	s.state = domain.SessionState{
		Status:  status,
		Query:   query,
		Results: results,
	}
	s.mu.Unlock()

	s.log.Info("%q -> %s (%d results)", query, status, len(results))
	s.notify()
}

// notify delivers the latest snapshot to state listeners.
func (s *Session) notify() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.listenersMu.Lock()
	listeners := make([]stateListener, len(s.stateListeners))
	copy(listeners, s.stateListeners)
	s.listenersMu.Unlock()

	if len(listeners) == 0 {
		return
	}
	snapshot := s.State()
	for _, l := range listeners {
		l.fn(snapshot)
	}
}

// notifyCommit reports input-driven commits.
func (s *Session) notifyCommit(query string, origin commitOrigin) {
	if origin != originInput {
		return
	}

	s.listenersMu.Lock()
	listeners := make([]commitListener, len(s.commitListeners))
	copy(listeners, s.commitListeners)
	s.listenersMu.Unlock()

	for _, l := range listeners {
		l.fn(query)
	}
}
