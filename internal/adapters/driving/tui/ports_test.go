package tui

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	navmemory "github.com/custodia-labs/searchbox/internal/adapters/driven/navigation/memory"
	"github.com/custodia-labs/searchbox/internal/core/domain"
)

// MockSearchBackend implements driven.SearchBackend for testing.
type MockSearchBackend struct {
	SearchFunc func(ctx context.Context, query string, opts domain.SearchOptions) (domain.SearchResponse, error)
}

func (m *MockSearchBackend) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (domain.SearchResponse, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query, opts)
	}
	return domain.SearchResponse{Results: []domain.SearchResult{}}, nil
}

func TestNewPorts(t *testing.T) {
	session := newTestSession(t, &MockSearchBackend{})
	history, err := navmemory.NewHistory("/")
	require.NoError(t, err)

	ports := NewPorts(session, history)

	require.NotNil(t, ports)
	assert.Equal(t, session, ports.Session)
	assert.Equal(t, history, ports.History)
}

func TestPorts_Validate(t *testing.T) {
	t.Run("missing session", func(t *testing.T) {
		ports := &Ports{}

		assert.ErrorIs(t, ports.Validate(), ErrMissingSession)
	})

	t.Run("history is optional", func(t *testing.T) {
		ports := &Ports{Session: newTestSession(t, &MockSearchBackend{})}

		assert.NoError(t, ports.Validate())
	})
}
