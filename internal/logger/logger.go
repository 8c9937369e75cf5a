// Package logger provides verbose logging for searchbox.
// When verbose mode is enabled via the --verbose flag, debug messages
// are printed to stderr to trace debouncing, request issue and settlement.
// Errors are always printed.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

// Levels are printed as a bracketed prefix, e.g. "[WARN] ".
const (
	levelDebug = "DEBUG"
	levelInfo  = "INFO"
	levelWarn  = "WARN"
	levelError = "ERROR"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for all logs.
// Defaults to os.Stderr. The TUI points it at a file while it owns the
// terminal.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// write prints one line. Lines below error level need verbose mode.
// The write lock keeps lines from concurrent goroutines whole.
func write(level string, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if !verbose && level != levelError {
		return
	}
	fmt.Fprintf(output, "["+level+"] "+format+"\n", args...)
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	write(levelDebug, format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
	}
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	write(levelInfo, format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	write(levelWarn, format, args...)
}

// Error prints an error message regardless of verbose mode.
func Error(format string, args ...any) {
	write(levelError, format, args...)
}

// Scope prefixes every message with a component name, e.g. "session 1a2b3c4d".
type Scope struct {
	prefix string
}

// For returns a Scope for component.
func For(component string) Scope {
	return Scope{prefix: component + ": "}
}

// Debug prints a scoped debug message.
func (s Scope) Debug(format string, args ...any) {
	write(levelDebug, s.prefix+format, args...)
}

// Info prints a scoped informational message.
func (s Scope) Info(format string, args ...any) {
	write(levelInfo, s.prefix+format, args...)
}

// Warn prints a scoped warning.
func (s Scope) Warn(format string, args ...any) {
	write(levelWarn, s.prefix+format, args...)
}

// Error prints a scoped error.
func (s Scope) Error(format string, args ...any) {
	write(levelError, s.prefix+format, args...)
}
