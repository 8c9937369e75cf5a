package domain

import (
	"fmt"
	"time"
)

// ServerSettings configures the backend stub and its HTTP listener.
type ServerSettings struct {
	// Addr is the listen address, e.g. ":3000".
	Addr string

	// Latency is the artificial delay applied before every non-empty response.
	Latency time.Duration

	// FailureRate is the probability [0,1] of a transient 503.
	FailureRate float64
}

// ClientSettings configures the search box.
type ClientSettings struct {
	// Endpoint is the base URL of the search API.
	Endpoint string

	// Limit is sent as the limit query parameter.
	Limit int

	// Debounce is how long input must be stable before it is committed.
	Debounce time.Duration

	// RatePerSecond throttles outgoing requests. Zero disables throttling.
	RatePerSecond float64
}

// CatalogSettings configures the catalog served by the backend stub.
type CatalogSettings struct {
	// File is an optional TOML file replacing the built-in catalog.
	File string
}

// Settings holds all application settings.
type Settings struct {
	// Server holds backend stub settings.
	Server ServerSettings

	// Client holds search box settings.
	Client ClientSettings

	// Catalog holds catalog source settings.
	Catalog CatalogSettings
}

// Default values.
const (
	DefaultAddr          = ":3000"
	DefaultLatency       = 500 * time.Millisecond
	DefaultFailureRate   = 0.1
	DefaultEndpoint      = "http://localhost:3000"
	DefaultLimit         = 10
	DefaultDebounce      = 300 * time.Millisecond
	DefaultRatePerSecond = 10
)

// DefaultSettings returns settings with sensible defaults.
func DefaultSettings() Settings {
	return Settings{
		Server: ServerSettings{
			Addr:        DefaultAddr,
			Latency:     DefaultLatency,
			FailureRate: DefaultFailureRate,
		},
		Client: ClientSettings{
			Endpoint:      DefaultEndpoint,
			Limit:         DefaultLimit,
			Debounce:      DefaultDebounce,
			RatePerSecond: DefaultRatePerSecond,
		},
	}
}

// Validate checks settings for values the services cannot work with.
func (s Settings) Validate() error {
	if s.Server.FailureRate < 0 || s.Server.FailureRate > 1 {
		return fmt.Errorf("%w: server.failure_rate must be within [0,1], got %v", ErrInvalidInput, s.Server.FailureRate)
	}
	if s.Server.Latency < 0 {
		return fmt.Errorf("%w: server.latency_ms must not be negative", ErrInvalidInput)
	}
	if s.Client.Debounce < 0 {
		return fmt.Errorf("%w: client.debounce_ms must not be negative", ErrInvalidInput)
	}
	if s.Client.Limit < 0 {
		return fmt.Errorf("%w: client.limit must not be negative", ErrInvalidInput)
	}
	if s.Client.RatePerSecond < 0 {
		return fmt.Errorf("%w: client.rate_per_sec must not be negative", ErrInvalidInput)
	}
	return nil
}
