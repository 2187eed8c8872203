package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrConflict reports an optimistic-lock version mismatch.
	ErrConflict = errors.New("version conflict")
)
