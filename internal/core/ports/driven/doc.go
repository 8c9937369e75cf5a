// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - SearchBackend: Executes one search request (HTTP client or in-process stub)
//   - Catalog: The static dataset served by the backend stub
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - Navigator: Current location and non-history-appending replace. Without it,
//     the search session runs without URL synchronisation.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
