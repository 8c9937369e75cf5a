package driven

import (
	"context"

	"github.com/custodia-labs/searchbox/internal/core/domain"
)

// Catalog provides the static dataset the backend stub filters.
type Catalog interface {
	// All returns every entry in catalog order.
	// The returned slice is owned by the caller.
	All(ctx context.Context) ([]domain.SearchResult, error)
}
