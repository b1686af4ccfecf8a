package repository

import "errors"

var (
	// ErrNotFound means the requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means an insert lost a uniqueness race; the caller should
	// re-fetch the row that won.
	ErrConflict = errors.New("conflict")

	// ErrEmptyText rejects a log entry with no text.
	ErrEmptyText = errors.New("log text must not be empty")
)
