package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup, update or delete matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrCourseGone is returned when an enrollment references a course that no longer exists.
	ErrCourseGone = errors.New("referenced course does not exist")
)
