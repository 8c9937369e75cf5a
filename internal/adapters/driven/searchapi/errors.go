package searchapi

import "errors"

// Client errors.
var (
	// ErrMissingEndpoint is returned when no endpoint is configured.
	ErrMissingEndpoint = errors.New("search endpoint is required")

	// ErrInvalidEndpoint is returned when the endpoint is not an absolute http(s) URL.
	ErrInvalidEndpoint = errors.New("search endpoint must be an absolute http or https URL")
)
