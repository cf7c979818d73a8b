package domain

import "errors"

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrConflict is returned when a write violates a uniqueness constraint.
	ErrConflict = errors.New("record conflicts with an existing one")
	// ErrReference is returned when a write points at a missing related record.
	ErrReference = errors.New("referenced record does not exist")
)
