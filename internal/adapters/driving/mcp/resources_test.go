package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/searchbox/internal/core/domain"
)

func TestExtractQuery(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
		ok       bool
	}{
		{name: "plain query", uri: "searchbox://search/react", expected: "react", ok: true},
		{name: "escaped query", uri: "searchbox://search/next%20router", expected: "next router", ok: true},
		{name: "whitespace trimmed", uri: "searchbox://search/%20css%20", expected: "css", ok: true},
		{name: "empty query", uri: "searchbox://search/", ok: false},
		{name: "blank query", uri: "searchbox://search/%20%20", ok: false},
		{name: "invalid prefix", uri: "file://search/react", ok: false},
		{name: "bad escape", uri: "searchbox://search/%zz", ok: false},
		{name: "empty URI", uri: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, ok := extractQuery(tt.uri)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, query)
		})
	}
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestServer_handleSearchResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns results as JSON", func(t *testing.T) {
		mockSearch := &mockSearchService{
			results: []domain.SearchResult{{ID: "guide-css-grid", Title: "CSS Grid", Snippet: "Layouts"}},
		}
		server, err := NewServer(&Ports{Search: mockSearch}, "test")
		require.NoError(t, err)

		result, err := server.handleSearchResource(ctx, readRequest("searchbox://search/grid"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Equal(t, "searchbox://search/grid", result.Contents[0].URI)

		var output SearchOutput
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &output))
		assert.Equal(t, "grid", output.Query)
		assert.Equal(t, 1, output.Count)
		assert.Equal(t, "guide-css-grid", output.Results[0].ID)
		assert.Equal(t, domain.DefaultLimit, mockSearch.gotOpts.Limit)
	})

	t.Run("missing query is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}}, "test")
		require.NoError(t, err)

		_, err = server.handleSearchResource(ctx, readRequest("searchbox://search/"))
		require.Error(t, err)
	})

	t.Run("wraps search failure", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{err: errors.New("boom")}}, "test")
		require.NoError(t, err)

		_, err = server.handleSearchResource(ctx, readRequest("searchbox://search/react"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "boom")
	})
}

func TestServer_handleSettingsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("not found without settings port", func(t *testing.T) {
		server, err := NewServer(&Ports{Search: &mockSearchService{}}, "test")
		require.NoError(t, err)

		_, err = server.handleSettingsResource(ctx, readRequest("searchbox://settings"))
		require.Error(t, err)
	})

	t.Run("returns settings as JSON", func(t *testing.T) {
		settings := domain.DefaultSettings()
		settings.Server.Latency = 250 * time.Millisecond
		settings.Catalog.File = "/tmp/catalog.toml"

		server, err := NewServer(&Ports{
			Search:   &mockSearchService{},
			Settings: &mockSettingsService{settings: &settings},
		}, "test")
		require.NoError(t, err)

		result, err := server.handleSettingsResource(ctx, readRequest("searchbox://settings"))
		require.NoError(t, err)
		require.Len(t, result.Contents, 1)

		var view struct {
			Server struct {
				Addr      string  `json:"addr"`
				LatencyMS int64   `json:"latency_ms"`
				Failure   float64 `json:"failure_rate"`
			} `json:"server"`
			Client struct {
				DebounceMS int64 `json:"debounce_ms"`
			} `json:"client"`
			Catalog struct {
				File string `json:"file"`
			} `json:"catalog"`
		}
		require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &view))
		assert.Equal(t, domain.DefaultAddr, view.Server.Addr)
		assert.Equal(t, int64(250), view.Server.LatencyMS)
		assert.InDelta(t, domain.DefaultFailureRate, view.Server.Failure, 1e-9)
		assert.Equal(t, int64(300), view.Client.DebounceMS)
		assert.Equal(t, "/tmp/catalog.toml", view.Catalog.File)
	})

	t.Run("wraps settings failure", func(t *testing.T) {
		server, err := NewServer(&Ports{
			Search:   &mockSearchService{},
			Settings: &mockSettingsService{err: errors.New("disk gone")},
		}, "test")
		require.NoError(t, err)

		_, err = server.handleSettingsResource(ctx, readRequest("searchbox://settings"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "disk gone")
	})
}
