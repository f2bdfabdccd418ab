package service

import "errors"

// Sentinel kinds for session errors. Validation failures are never errors;
// these cover caller mistakes and lifecycle problems only.
var (
	ErrNotStarted   = errors.New("service not started")
	ErrBackpressure = errors.New("event queue full")
	ErrUnknownEvent = errors.New("unknown event kind")
	ErrNotScalar    = errors.New("field is not a scalar value")
)
