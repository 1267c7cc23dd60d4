package server

import (
	"errors"

	interventionservice "suivi/internal/services/intervention"
	notificationservice "suivi/internal/services/notification"
	projectservice "suivi/internal/services/project"
	taskservice "suivi/internal/services/task"
	userservice "suivi/internal/services/user"
)

// validationSentinels are the service errors caused by bad input rather
// than server state.
var validationSentinels = []error{
	taskservice.ErrEmptyName,
	taskservice.ErrNameTooLong,
	taskservice.ErrInvalidTaskID,
	taskservice.ErrInvalidUserID,
	taskservice.ErrInvalidProductID,
	taskservice.ErrInvalidStatus,
	taskservice.ErrInvalidPriority,

	interventionservice.ErrInvalidInterventionID,
	interventionservice.ErrInvalidTaskID,
	interventionservice.ErrInvalidUserID,
	interventionservice.ErrEmptyDescription,
	interventionservice.ErrDescriptionTooLong,
	interventionservice.ErrInvalidReviewStatus,

	notificationservice.ErrInvalidUserID,
	notificationservice.ErrInvalidNotificationID,
	notificationservice.ErrEmptyMessage,

	projectservice.ErrEmptyName,
	projectservice.ErrNameTooLong,
	projectservice.ErrInvalidProjectID,
	projectservice.ErrInvalidProductID,

	userservice.ErrEmptyName,
	userservice.ErrInvalidEmail,
	userservice.ErrEmailTaken,
	userservice.ErrPasswordTooShort,
	userservice.ErrInvalidUserID,
}

func isValidationError(err error) bool {
	for _, sentinel := range validationSentinels {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
