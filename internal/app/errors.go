package app

import "errors"

// Application errors.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrNotTerminal indicates interactive mode was started without a TTY.
	ErrNotTerminal = errors.New("interactive mode requires a terminal")

	// ErrClosed indicates the application was already shut down.
	ErrClosed = errors.New("application closed")
)
