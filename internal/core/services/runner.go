package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/searchbox/internal/core/domain"
)

// RequestFactory performs one asynchronous operation.
// It must observe ctx and return promptly once ctx is cancelled.
type RequestFactory[T any] func(ctx context.Context) (T, error)

// RequestRunner guarantees at most one active request at a time.
// Starting a request cancels the previous one, and results from
// superseded, cancelled or post-Close requests are discarded.
type RequestRunner[T any] struct {
	mu     sync.Mutex
	seq    uint64
	cancel context.CancelFunc
	closed bool
}

// NewRequestRunner creates a request runner.
func NewRequestRunner[T any]() *RequestRunner[T] {
	return &RequestRunner[T]{}
}

// Ticket is a claimed request slot. Claiming happens synchronously in
// Start, so slots are ordered by the caller and not by when the request
// body gets to run.
type Ticket[T any] struct {
	r      *RequestRunner[T]
	id     uint64
	ctx    context.Context
	cancel context.CancelFunc
}

// Start cancels any in-flight request and claims the slot for a new one.
// The returned ticket must be completed with Do, usually on another
// goroutine. A ticket claimed after Close is already dead.
func (r *RequestRunner[T]) Start(ctx context.Context) *Ticket[T] {
	reqCtx, cancel := context.WithCancel(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		cancel()
		return &Ticket[T]{r: r, ctx: reqCtx, cancel: cancel}
	}
	if r.cancel != nil {
		r.cancel()
	}
	r.seq++
	r.cancel = cancel
	return &Ticket[T]{r: r, id: r.seq, ctx: reqCtx, cancel: cancel}
}

// Context is the ticket's request context. It is cancelled when the
// ticket is superseded.
func (t *Ticket[T]) Context() context.Context {
	return t.ctx
}

// Do runs factory for the ticket.
//
// live is false when the outcome was discarded: the request was cancelled,
// a newer Start or Cancel happened before it settled, or the runner was
// closed. A ticket superseded before Do never calls factory. A discarded
// outcome is not an error and err is nil. Any other failure from factory,
// including a panic, is returned as err.
func (t *Ticket[T]) Do(factory RequestFactory[T]) (value T, live bool, err error) {
	defer func() {
		t.r.mu.Lock()
		if t.r.seq == t.id {
			t.r.cancel = nil
		}
		t.r.mu.Unlock()
		t.cancel()
	}()

	if !t.current() || t.ctx.Err() != nil {
		return value, false, nil
	}

	result, callErr := invoke(t.ctx, factory)

	if !t.current() || t.ctx.Err() == context.Canceled || domain.IsCanceled(callErr) {
		var zero T
		return zero, false, nil
	}
	if callErr != nil {
		var zero T
		return zero, true, callErr
	}
	return result, true, nil
}

func (t *Ticket[T]) current() bool {
	t.r.mu.Lock()
	defer t.r.mu.Unlock()
	return !t.r.closed && t.id != 0 && t.id == t.r.seq
}

// Run starts a request and waits for it. It is Start followed by Do.
func (r *RequestRunner[T]) Run(ctx context.Context, factory RequestFactory[T]) (value T, live bool, err error) {
	return r.Start(ctx).Do(factory)
}

// invoke calls factory, turning a panic into an ordinary failure.
func invoke[T any](ctx context.Context, factory RequestFactory[T]) (value T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("request failed: %v", p)
		}
	}()
	return factory(ctx)
}

// Cancel aborts the in-flight request, if any, without starting a replacement.
func (r *RequestRunner[T]) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.abortLocked()
}

// Close cancels the in-flight request and discards every later Run.
func (r *RequestRunner[T]) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.abortLocked()
	r.closed = true
}

// InFlight reports whether a request is outstanding.
func (r *RequestRunner[T]) InFlight() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

func (r *RequestRunner[T]) abortLocked() {
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.seq++
}
