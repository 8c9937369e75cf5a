package driving

import (
	"context"

	"github.com/custodia-labs/searchbox/internal/core/domain"
)

// SearchService provides catalog search to external actors (HTTP, MCP).
type SearchService interface {
	// Search filters the catalog for query.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (domain.SearchResponse, error)
}
