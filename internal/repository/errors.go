package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrStatusConflict is returned by conditional updates when the ride's
	// status no longer matches the expected value. The caller lost a race
	// against a concurrent transition.
	ErrStatusConflict = errors.New("ride status changed concurrently")
)
