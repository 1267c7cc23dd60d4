// Package notification exposes the per-user notification feed.
package notification

import (
	"context"
	"fmt"
	"time"

	"suivi/internal/database"
	"suivi/internal/events"
	"suivi/internal/models"
)

// Service defines all notification-related business operations
type Service interface {
	Notify(ctx context.Context, userID int, message, category string) (*models.Notification, error)
	ListForUser(ctx context.Context, userID int) ([]models.Notification, error)
	UnreadCount(ctx context.Context, userID int) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, userID int) error
	ClearAll(ctx context.Context, userID int) error
}

// service implements Service interface
type service struct {
	repo        database.DataStore
	eventClient events.EventPublisher
}

// NewService creates a new notification service
func NewService(repo database.DataStore, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// Notify stores a notification and fans out a change event for the
// recipient.
func (s *service) Notify(ctx context.Context, userID int, message, category string) (*models.Notification, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	if message == "" {
		return nil, ErrEmptyMessage
	}

	notification, err := s.repo.CreateNotification(ctx, userID, message, category)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}

	s.publishChange(userID)
	return notification, nil
}

// ListForUser retrieves a user's notifications, newest first.
func (s *service) ListForUser(ctx context.Context, userID int) ([]models.Notification, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	return s.repo.ListNotificationsByUser(ctx, userID)
}

// UnreadCount returns the number of unread notifications.
func (s *service) UnreadCount(ctx context.Context, userID int) (int, error) {
	if userID <= 0 {
		return 0, ErrInvalidUserID
	}
	return s.repo.CountUnreadNotifications(ctx, userID)
}

// MarkRead stamps one notification as read.
func (s *service) MarkRead(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidNotificationID
	}
	return s.repo.MarkNotificationRead(ctx, id)
}

// MarkAllRead stamps every unread notification of a user.
func (s *service) MarkAllRead(ctx context.Context, userID int) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}
	if err := s.repo.MarkAllNotificationsRead(ctx, userID); err != nil {
		return err
	}
	s.publishChange(userID)
	return nil
}

// ClearAll deletes every notification of a user.
func (s *service) ClearAll(ctx context.Context, userID int) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}
	if err := s.repo.ClearNotifications(ctx, userID); err != nil {
		return err
	}
	s.publishChange(userID)
	return nil
}

func (s *service) publishChange(userID int) {
	if s.eventClient == nil {
		return
	}
	_ = s.eventClient.SendEvent(events.Event{
		Type:      events.EventDataChanged,
		UserID:    userID,
		Timestamp: time.Now(),
	})
}
