package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"k8s.io/utils/clock"

	"github.com/custodia-labs/searchbox/internal/core/domain"
	"github.com/custodia-labs/searchbox/internal/core/ports/driven"
	"github.com/custodia-labs/searchbox/internal/core/ports/driving"
	"github.com/custodia-labs/searchbox/internal/logger"
)

// Ensure CatalogSearchService implements both sides: the HTTP and MCP
// adapters drive it, and local sessions use it directly as a backend.
var (
	_ driving.SearchService = (*CatalogSearchService)(nil)
	_ driven.SearchBackend  = (*CatalogSearchService)(nil)
)

var backendLog = logger.For("backend")

// BackendOptions configures the backend stub.
type BackendOptions struct {
	// Latency is applied before every non-empty query.
	Latency time.Duration

	// FailureRate is the probability [0,1] of a transient failure.
	FailureRate float64

	// Rand returns values in [0,1). Defaults to math/rand/v2.
	Rand func() float64

	// Clock times the latency wait. Defaults to the real clock.
	Clock clock.Clock
}

// DefaultBackendOptions returns the production fault profile.
func DefaultBackendOptions() BackendOptions {
	return BackendOptions{
		Latency:     domain.DefaultLatency,
		FailureRate: domain.DefaultFailureRate,
	}
}

// CatalogSearchService filters a fixed catalog with injected latency and
// transient failures.
type CatalogSearchService struct {
	catalog driven.Catalog
	rand    func() float64
	clock   clock.Clock

	mu          sync.RWMutex
	latency     time.Duration
	failureRate float64
}

// NewCatalogSearchService creates the backend stub over catalog.
func NewCatalogSearchService(catalog driven.Catalog, opts BackendOptions) *CatalogSearchService {
	if opts.Rand == nil {
		opts.Rand = rand.Float64
	}
	if opts.Clock == nil {
		opts.Clock = clock.RealClock{}
	}
	s := &CatalogSearchService{
		catalog: catalog,
		rand:    opts.Rand,
		clock:   opts.Clock,
	}
	s.SetFaults(opts.Latency, opts.FailureRate)
	return s
}

// SetFaults replaces the injected latency and failure rate.
// Out-of-range values are clamped.
func (s *CatalogSearchService) SetFaults(latency time.Duration, failureRate float64) {
	if latency < 0 {
		latency = 0
	}
	failureRate = min(max(failureRate, 0), 1)

	s.mu.Lock()
	s.latency = latency
	s.failureRate = failureRate
	s.mu.Unlock()

	backendLog.Debug("latency=%s failure_rate=%.2f", latency, failureRate)
}

// Faults returns the current latency and failure rate.
func (s *CatalogSearchService) Faults() (time.Duration, float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latency, s.failureRate
}

// Search returns catalog entries whose title or snippet contains query,
// case-insensitively, in catalog order. An empty query answers at once
// with no results and is never subject to latency or failure injection.
func (s *CatalogSearchService) Search(
	ctx context.Context, query string, opts domain.SearchOptions,
) (domain.SearchResponse, error) {
	query = domain.NormalizeQuery(query)
	if query == "" {
		return domain.SearchResponse{Results: []domain.SearchResult{}}, nil
	}

	latency, failureRate := s.Faults()

	if latency > 0 {
		select {
		case <-s.clock.After(latency):
		case <-ctx.Done():
			return domain.SearchResponse{}, ctx.Err()
		}
	}

	if failureRate > 0 && s.rand() < failureRate {
		backendLog.Debug("injected failure for %q", query)
		return domain.SearchResponse{}, domain.NewTransientError()
	}

	entries, err := s.catalog.All(ctx)
	if err != nil {
		return domain.SearchResponse{}, fmt.Errorf("read catalog: %w", err)
	}

	lowered := strings.ToLower(query)
	results := make([]domain.SearchResult, 0)
	for _, entry := range entries {
		if strings.Contains(strings.ToLower(entry.Title), lowered) ||
			strings.Contains(strings.ToLower(entry.Snippet), lowered) {
			results = append(results, entry)
			if opts.Limit > 0 && len(results) == opts.Limit {
				break
			}
		}
	}

	return domain.SearchResponse{Results: results}, nil
}
