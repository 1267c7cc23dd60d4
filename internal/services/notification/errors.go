package notification

import "errors"

// Notification-related errors
var (
	ErrInvalidUserID         = errors.New("invalid user ID")
	ErrInvalidNotificationID = errors.New("invalid notification ID")
	ErrEmptyMessage          = errors.New("notification message cannot be empty")
)
