package model

import "errors"

// Sentinel kinds for field access errors.
var (
	ErrUnknownField = errors.New("unknown field")
	ErrInvalidValue = errors.New("invalid field value")
)
