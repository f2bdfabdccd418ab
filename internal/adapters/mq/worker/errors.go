package worker

import "errors"

// Sentinel kinds for worker errors.
var (
	ErrHandlerPanic = errors.New("event handler panicked")
)
