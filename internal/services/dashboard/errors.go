package dashboard

import "errors"

// Dashboard-related errors
var (
	ErrInvalidUserID = errors.New("invalid user ID")
)
