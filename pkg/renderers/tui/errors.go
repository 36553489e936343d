package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrNilController is returned by New without a screen controller.
	ErrNilController = errors.New("tui: controller is required")
	// ErrInvalidChoice is returned when a driver reports an out-of-range
	// menu selection.
	ErrInvalidChoice = errors.New("tui: invalid menu choice")
)
