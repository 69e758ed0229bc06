package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup matches no row, and by
	// update/delete when the target row does not exist.
	ErrNotFound = errors.New("repository: not found")

	// ErrDuplicateEmail is returned when the users table rejects an
	// insert on the email uniqueness constraint. The constraint is the
	// final authority; the pre-insert lookup in the handler is only a
	// best-effort check.
	ErrDuplicateEmail = errors.New("repository: email already registered")
)
