// Package domain defines the core business entities for searchbox.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - SearchResult: A single catalog hit returned by the backend
//   - SearchResponse: The ordered result set for one query
//   - Status: The search session's finite state
//   - SessionState: The snapshot a renderer draws from
//   - Settings: Server, client and catalog configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
