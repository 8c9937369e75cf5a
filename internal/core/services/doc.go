// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The search box itself is assembled from four pieces that live here:
//
//   - Debouncer: coalesces rapidly changing input
//   - RequestRunner: single-flight execution with cancellation of superseded requests
//   - Session: the status state machine and the only owner of SessionState
//   - URLSynchronizer: mirrors the committed query into a Navigator and back
//
// Services are pure Go with no CGO. Time is injected through
// k8s.io/utils/clock so tests can step it deterministically.
package services
