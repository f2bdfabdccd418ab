package replay

import "errors"

// Sentinel errors for scenario loading and replay.
var (
	ErrInvalidScenario = errors.New("invalid scenario")
	ErrUnknownAction   = errors.New("unknown action")
	ErrRequest         = errors.New("request failed")
)
