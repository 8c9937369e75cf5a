// Package searchapi implements driven.SearchBackend over the HTTP search API.
package searchapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/searchbox/internal/core/domain"
	"github.com/custodia-labs/searchbox/internal/core/ports/driven"
	"github.com/custodia-labs/searchbox/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.SearchBackend = (*Client)(nil)

const (
	// SearchPath is the search endpoint path.
	SearchPath = "/api/search"

	// HeaderRequestID correlates client and server log lines.
	HeaderRequestID = "X-Request-ID"

	// maxBodySize bounds how much of a response is read.
	maxBodySize = 1 << 20

	defaultTimeout = 30 * time.Second
)

var log = logger.For("searchapi")

// Options configures a Client.
type Options struct {
	// HTTPClient performs requests. Defaults to a client with a 30s timeout.
	HTTPClient *http.Client

	// RatePerSecond throttles requests. Zero disables throttling.
	RatePerSecond float64
}

// Client queries GET {endpoint}/api/search.
type Client struct {
	base    *url.URL
	http    *http.Client
	limiter *RateLimiter
}

// NewClient creates a client for endpoint, e.g. "http://localhost:3000".
func NewClient(endpoint string, opts Options) (*Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, ErrMissingEndpoint
	}
	base, err := url.Parse(endpoint)
	if err != nil || (base.Scheme != "http" && base.Scheme != "https") || base.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidEndpoint, endpoint)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}

	return &Client{
		base:    base,
		http:    httpClient,
		limiter: NewRateLimiter(opts.RatePerSecond),
	}, nil
}

// Endpoint returns the configured base URL.
func (c *Client) Endpoint() string {
	return c.base.String()
}

// Search performs one search request.
//
// A cancelled ctx returns ctx.Err(). A non-2xx status returns
// *domain.APIError. A payload that fails validation returns an error
// wrapping domain.ErrInvalidResponse.
func (c *Client) Search(ctx context.Context, query string, opts domain.SearchOptions) (domain.SearchResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return domain.SearchResponse{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL(query, opts.Limit), http.NoBody)
	if err != nil {
		return domain.SearchResponse{}, fmt.Errorf("build search request: %w", err)
	}
	requestID := uuid.New().String()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, requestID)

	log.Debug("GET %s (request %s)", req.URL, requestID)

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return domain.SearchResponse{}, ctx.Err()
		}
		return domain.SearchResponse{}, fmt.Errorf("fetch search results: %w", err)
	}
	defer resp.Body.Close()

	c.limiter.UpdateFromResponse(resp)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if ctx.Err() != nil {
			return domain.SearchResponse{}, ctx.Err()
		}
		return domain.SearchResponse{}, fmt.Errorf("read search response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := errorMessage(body)
		if msg == "" {
			msg = domain.MessageFetchFailed
		}
		log.Debug("request %s: status %d: %s", requestID, resp.StatusCode, msg)
		return domain.SearchResponse{}, &domain.APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	results, err := decodeResults(body)
	if err != nil {
		log.Warn("request %s: %v", requestID, err)
		return domain.SearchResponse{}, err
	}
	return domain.SearchResponse{Results: results}, nil
}

func (c *Client) searchURL(query string, limit int) string {
	u := *c.base
	u.Path = strings.TrimSuffix(u.Path, "/") + SearchPath
	q := url.Values{}
	q.Set("q", query)
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
