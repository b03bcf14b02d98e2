package lua

import "errors"

// Errors for Lua state operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrFunctionNotFound is returned when a named global function does not exist.
	ErrFunctionNotFound = errors.New("lua function not found")

	// ErrNotFunction is returned when a named global exists but is not a function.
	ErrNotFunction = errors.New("lua global is not a function")

	// ErrStateBusy is returned when a callback is invoked while its state is
	// already executing Lua code.
	ErrStateBusy = errors.New("lua state is busy")
)
