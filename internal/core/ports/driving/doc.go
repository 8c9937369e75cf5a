// Package driving defines the interfaces that front ends call into core.
//
// The HTTP and MCP adapters drive SearchService. The CLI drives
// SettingsService. The TUI drives a SearchSession and a History, which it
// only reads from and nudges: the session alone owns search state.
//
// Implementations live in internal/core/services and, for History, in
// internal/adapters/driven/navigation/memory.
package driving
