package repository

import "github.com/friendsofgo/errors"

var (
	// ErrNotFound is returned when no alert matches a point lookup.
	ErrNotFound = errors.New("alert repository: not found")
	// ErrDuplicate is returned when an insert collides with the dedup
	// uniqueness constraint.
	ErrDuplicate = errors.New("alert repository: duplicate alert")
)
