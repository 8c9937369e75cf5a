package cli

import (
	"fmt"

	catalogmem "github.com/custodia-labs/searchbox/internal/adapters/driven/catalog/memory"
	"github.com/custodia-labs/searchbox/internal/adapters/driven/searchapi"
	"github.com/custodia-labs/searchbox/internal/core/domain"
	"github.com/custodia-labs/searchbox/internal/core/ports/driven"
	"github.com/custodia-labs/searchbox/internal/core/services"
)

// loadCatalog returns the catalog file's entries, or the built-in catalog
// when path is empty.
func loadCatalog(path string) (driven.Catalog, error) {
	if path == "" {
		return catalogmem.Default(), nil
	}
	catalog, err := catalogmem.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading catalog: %w", err)
	}
	return catalog, nil
}

// newLocalBackend builds the in-process backend stub from server settings.
func newLocalBackend(settings *domain.Settings) (*services.CatalogSearchService, error) {
	catalog, err := loadCatalog(settings.Catalog.File)
	if err != nil {
		return nil, err
	}
	return services.NewCatalogSearchService(catalog, services.BackendOptions{
		Latency:     settings.Server.Latency,
		FailureRate: settings.Server.FailureRate,
	}), nil
}

// newBackend returns the in-process stub when local is set, otherwise an
// HTTP client for endpoint (or the configured client endpoint).
func newBackend(settings *domain.Settings, endpoint string, local bool) (driven.SearchBackend, error) {
	if local {
		backend, err := newLocalBackend(settings)
		if err != nil {
			return nil, err
		}
		return backend, nil
	}

	if endpoint == "" {
		endpoint = settings.Client.Endpoint
	}
	client, err := searchapi.NewClient(endpoint, searchapi.Options{
		RatePerSecond: settings.Client.RatePerSecond,
	})
	if err != nil {
		return nil, fmt.Errorf("creating search client: %w", err)
	}
	return client, nil
}
