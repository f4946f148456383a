package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrAttemptsExhausted is returned when a session limits submit attempts
	// and none of them succeeded.
	ErrAttemptsExhausted = errors.New("tui: submit attempts exhausted")
)
