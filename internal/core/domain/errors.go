package domain

import "errors"

var (
	// ErrNotFound is returned when a playlist id does not exist in the store.
	ErrNotFound = errors.New("domain: not found")

	// ErrEmptyVibe is returned when a generation request carries no vibe text.
	ErrEmptyVibe = errors.New("domain: vibe description is required")

	// ErrInvalidLimit is returned when the requested track count is out of range.
	ErrInvalidLimit = errors.New("domain: limit must be between 1 and 100")
)
