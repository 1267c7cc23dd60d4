package user

import "errors"

// Account-related errors
var (
	ErrEmptyName          = errors.New("user name cannot be empty")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailTaken         = errors.New("email address already registered")
	ErrPasswordTooShort   = errors.New("password must be at least 6 characters")
	ErrInvalidUserID      = errors.New("invalid user ID")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrSessionExpired     = errors.New("session expired or unknown")
)
