package task

import "errors"

// Task-related errors
var (
	// Validation errors
	ErrEmptyName        = errors.New("task name cannot be empty")
	ErrNameTooLong      = errors.New("task name cannot exceed 255 characters")
	ErrInvalidTaskID    = errors.New("invalid task ID")
	ErrInvalidUserID    = errors.New("invalid user ID")
	ErrInvalidProductID = errors.New("invalid product ID")
	ErrInvalidStatus    = errors.New("invalid task status")
	ErrInvalidPriority  = errors.New("invalid task priority")
)
