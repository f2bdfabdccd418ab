package repository

import "errors"

// Sentinel kinds for submission store errors.
var (
	ErrNotFound    = errors.New("submission not found")
	ErrMissingID   = errors.New("submission id is required")
	ErrDuplicateID = errors.New("submission id already stored")
)
