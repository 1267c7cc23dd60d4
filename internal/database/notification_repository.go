package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"suivi/internal/models"
)

// NotificationRepo handles all notification-related database operations.
type NotificationRepo struct {
	db *sql.DB
}

// Create stores a notification for a user, minting its UUID.
func (r *NotificationRepo) Create(ctx context.Context, userID int, message, category string) (*models.Notification, error) {
	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO notifications (id, user_id, message, category)
		 VALUES (?, ?, ?, ?)`,
		id, userID, message, nullableString(category),
	); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

// GetByID retrieves one notification.
func (r *NotificationRepo) GetByID(ctx context.Context, id string) (*models.Notification, error) {
	n := &models.Notification{}
	var category sql.NullString
	var readAt sql.NullTime
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, message, category, read_at, created_at
		 FROM notifications WHERE id = ?`, id,
	).Scan(&n.ID, &n.UserID, &n.Message, &category, &readAt, &n.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	n.Category = category.String
	n.ReadAt = timeFromNull(readAt)
	return n, nil
}

// ListByUser retrieves a user's notifications, newest first.
func (r *NotificationRepo) ListByUser(ctx context.Context, userID int) ([]models.Notification, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, message, category, read_at, created_at
		 FROM notifications WHERE user_id = ?
		 ORDER BY created_at DESC, id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notifications := []models.Notification{}
	for rows.Next() {
		var n models.Notification
		var category sql.NullString
		var readAt sql.NullTime
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &category, &readAt, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.Category = category.String
		n.ReadAt = timeFromNull(readAt)
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// CountUnread returns the number of unread notifications for a user.
func (r *NotificationRepo) CountUnread(ctx context.Context, userID int) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND read_at IS NULL`,
		userID,
	).Scan(&count)
	return count, err
}

// MarkRead stamps one notification as read. Already-read notifications
// keep their original stamp.
func (r *NotificationRepo) MarkRead(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND read_at IS NULL`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Distinguish "already read" from "does not exist".
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
	}
	return nil
}

// MarkAllRead stamps every unread notification of a user.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, userID int) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET read_at = CURRENT_TIMESTAMP
		 WHERE user_id = ? AND read_at IS NULL`, userID)
	return err
}

// ClearAll deletes every notification of a user.
func (r *NotificationRepo) ClearAll(ctx context.Context, userID int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM notifications WHERE user_id = ?`, userID)
	return err
}
