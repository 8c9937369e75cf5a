package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runResult struct {
	value string
	live  bool
	err   error
}

// runAsync starts r.Run in a goroutine and returns its outcome channel.
func runAsync(r *RequestRunner[string], factory RequestFactory[string]) <-chan runResult {
	out := make(chan runResult, 1)
	go func() {
		v, live, err := r.Run(context.Background(), factory)
		out <- runResult{v, live, err}
	}()
	return out
}

func receive(t *testing.T, ch <-chan runResult) runResult {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("run did not return")
		return runResult{}
	}
}

func TestRequestRunner_Success(t *testing.T) {
	r := NewRequestRunner[string]()

	v, live, err := r.Run(context.Background(), func(context.Context) (string, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.True(t, live)
	assert.Equal(t, "ok", v)
	assert.False(t, r.InFlight())
}

func TestRequestRunner_FailureIsLive(t *testing.T) {
	r := NewRequestRunner[string]()
	boom := errors.New("boom")

	_, live, err := r.Run(context.Background(), func(context.Context) (string, error) {
		return "", boom
	})

	assert.True(t, live)
	assert.ErrorIs(t, err, boom)
}

func TestRequestRunner_PanicBecomesFailure(t *testing.T) {
	r := NewRequestRunner[string]()

	_, live, err := r.Run(context.Background(), func(context.Context) (string, error) {
		panic("factory exploded")
	})

	assert.True(t, live)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "factory exploded")
}

func TestRequestRunner_NewRunCancelsPrevious(t *testing.T) {
	r := NewRequestRunner[string]()
	started := make(chan struct{})

	first := runAsync(r, func(ctx context.Context) (string, error) {
		close(started)
		<-ctx.Done()
		return "", ctx.Err()
	})
	<-started
	require.True(t, r.InFlight())

	v, live, err := r.Run(context.Background(), func(context.Context) (string, error) {
		return "second", nil
	})
	require.NoError(t, err)
	assert.True(t, live)
	assert.Equal(t, "second", v)

	res := receive(t, first)
	assert.False(t, res.live)
	assert.NoError(t, res.err, "a discarded outcome is not an error")
}

func TestRequestRunner_SupersededResultDiscarded(t *testing.T) {
	r := NewRequestRunner[string]()
	started := make(chan struct{})
	release := make(chan struct{})

	// The first factory ignores cancellation and answers late.
	first := runAsync(r, func(context.Context) (string, error) {
		close(started)
		<-release
		return "stale", nil
	})
	<-started

	_, live, err := r.Run(context.Background(), func(context.Context) (string, error) {
		return "fresh", nil
	})
	require.NoError(t, err)
	require.True(t, live)

	close(release)
	res := receive(t, first)
	assert.False(t, res.live)
	assert.Empty(t, res.value)
}

func TestRequestRunner_CancellationErrorDiscarded(t *testing.T) {
	r := NewRequestRunner[string]()

	_, live, err := r.Run(context.Background(), func(context.Context) (string, error) {
		return "", fmt.Errorf("fetch: %w", context.Canceled)
	})

	assert.False(t, live)
	assert.NoError(t, err)
}

func TestRequestRunner_Cancel(t *testing.T) {
	r := NewRequestRunner[string]()
	started := make(chan struct{})

	pending := runAsync(r, func(ctx context.Context) (string, error) {
		close(started)
		<-ctx.Done()
		return "", ctx.Err()
	})
	<-started

	r.Cancel()

	res := receive(t, pending)
	assert.False(t, res.live)
	assert.NoError(t, res.err)
	assert.False(t, r.InFlight())

	// The runner is still usable.
	v, live, err := r.Run(context.Background(), func(context.Context) (string, error) {
		return "again", nil
	})
	require.NoError(t, err)
	assert.True(t, live)
	assert.Equal(t, "again", v)
}

func TestRequestRunner_Close(t *testing.T) {
	r := NewRequestRunner[string]()
	started := make(chan struct{})

	pending := runAsync(r, func(ctx context.Context) (string, error) {
		close(started)
		<-ctx.Done()
		return "", ctx.Err()
	})
	<-started

	r.Close()
	res := receive(t, pending)
	assert.False(t, res.live)

	called := false
	_, live, err := r.Run(context.Background(), func(context.Context) (string, error) {
		called = true
		return "x", nil
	})
	assert.False(t, called)
	assert.False(t, live)
	assert.NoError(t, err)
}

func TestRequestRunner_ParentContextCancelled(t *testing.T) {
	r := NewRequestRunner[string]()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, live, err := r.Run(ctx, func(ctx context.Context) (string, error) {
		return "", ctx.Err()
	})

	assert.False(t, live)
	assert.NoError(t, err)
}

func TestRequestRunner_StartOrderDecidesLiveness(t *testing.T) {
	r := NewRequestRunner[string]()

	older := r.Start(context.Background())
	newer := r.Start(context.Background())
	require.ErrorIs(t, older.Context().Err(), context.Canceled, "claiming a newer slot cancels the older one")
	require.NoError(t, newer.Context().Err())

	// The newer ticket runs first; the older one must not disturb it.
	v, live, err := newer.Do(func(context.Context) (string, error) {
		return "ab", nil
	})
	require.NoError(t, err)
	assert.True(t, live)
	assert.Equal(t, "ab", v)

	called := false
	_, live, err = older.Do(func(context.Context) (string, error) {
		called = true
		return "a", nil
	})
	assert.False(t, called, "a superseded ticket never reaches the backend")
	assert.False(t, live)
	assert.NoError(t, err)
}

func TestRequestRunner_CancelBeforeDo(t *testing.T) {
	r := NewRequestRunner[string]()

	ticket := r.Start(context.Background())
	require.True(t, r.InFlight())
	r.Cancel()

	require.ErrorIs(t, ticket.Context().Err(), context.Canceled)
	called := false
	_, live, err := ticket.Do(func(context.Context) (string, error) {
		called = true
		return "x", nil
	})
	assert.False(t, called)
	assert.False(t, live)
	assert.NoError(t, err)
	assert.False(t, r.InFlight())
}

func TestRequestRunner_StartAfterClose(t *testing.T) {
	r := NewRequestRunner[string]()
	r.Close()

	ticket := r.Start(context.Background())

	assert.Error(t, ticket.Context().Err())
	_, live, err := ticket.Do(func(context.Context) (string, error) {
		return "x", nil
	})
	assert.False(t, live)
	assert.NoError(t, err)
}
