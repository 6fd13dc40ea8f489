package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNoActions is returned when a form offers nothing to choose.
	ErrNoActions = errors.New("tui: form has no actions")
)
