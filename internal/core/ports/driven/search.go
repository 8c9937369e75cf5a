package driven

import (
	"context"

	"github.com/custodia-labs/searchbox/internal/core/domain"
)

// SearchBackend executes a single search request.
// Implementations must observe ctx cancellation at every suspension point.
type SearchBackend interface {
	// Search returns the results for a normalized query.
	// A failure that is not a cancellation is reported as an error;
	// *domain.APIError carries a user-facing message.
	Search(ctx context.Context, query string, opts domain.SearchOptions) (domain.SearchResponse, error)
}
