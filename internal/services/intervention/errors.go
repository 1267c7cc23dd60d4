package intervention

import "errors"

// Intervention-related errors
var (
	ErrInvalidInterventionID = errors.New("invalid intervention ID")
	ErrInvalidTaskID         = errors.New("invalid task ID")
	ErrInvalidUserID         = errors.New("invalid user ID")
	ErrEmptyDescription      = errors.New("intervention description cannot be empty")
	ErrDescriptionTooLong    = errors.New("intervention description cannot exceed 1000 characters")
	ErrInvalidReviewStatus   = errors.New("review status must be approved or refused")
)
