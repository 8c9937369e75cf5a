package tui

import "errors"

// ErrMissingSession is returned when the search session is not provided.
var ErrMissingSession = errors.New("tui: search session is required")

// ErrNotTerminal is returned when the TUI is started without a terminal.
var ErrNotTerminal = errors.New("tui: stdin and stdout must be a terminal")
