package models

import "errors"

// Domain errors shared across layers
var (
	// ErrNotFound indicates the requested record does not exist
	ErrNotFound = errors.New("record not found")

	// ErrInvalidStatus indicates a status outside pending/in-progress/completed
	ErrInvalidStatus = errors.New("invalid task status")

	// ErrInvalidPriority indicates a priority outside low/medium/high
	ErrInvalidPriority = errors.New("invalid task priority")

	// ErrInvalidRole indicates a role outside admin/user
	ErrInvalidRole = errors.New("invalid user role")
)
