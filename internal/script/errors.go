package script

import (
	"errors"
	"fmt"
)

// Errors returned by the script engine.
var (
	// ErrEngineClosed indicates the engine was closed.
	ErrEngineClosed = errors.New("script engine closed")
)

// LoadError reports a script that failed to load.
type LoadError struct {
	Name string
	Err  error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("loading script %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// CallError is the panic value raised when a Lua listener fails.
type CallError struct {
	Handle int
	Kind   string
	Err    error
}

// Error implements the error interface.
func (e *CallError) Error() string {
	return fmt.Sprintf("lua %s listener %d: %v", e.Kind, e.Handle, e.Err)
}

// Unwrap returns the underlying error.
func (e *CallError) Unwrap() error {
	return e.Err
}
