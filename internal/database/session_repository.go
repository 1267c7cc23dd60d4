package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"suivi/internal/models"
)

// SessionRepo handles login session storage.
type SessionRepo struct {
	db *sql.DB
}

// Create stores a session token for a user.
func (r *SessionRepo) Create(ctx context.Context, token string, userID int, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sessions (token, user_id, expires_at) VALUES (?, ?, ?)`,
		token, userID, expiresAt,
	)
	return err
}

// Get retrieves a session by token.
func (r *SessionRepo) Get(ctx context.Context, token string) (*models.Session, error) {
	session := &models.Session{}
	err := r.db.QueryRowContext(ctx,
		`SELECT token, user_id, expires_at FROM sessions WHERE token = ?`, token,
	).Scan(&session.Token, &session.UserID, &session.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return session, nil
}

// Delete removes one session (logout).
func (r *SessionRepo) Delete(ctx context.Context, token string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token = ?`, token)
	return err
}

// Purge removes every session expired at the given time.
func (r *SessionRepo) Purge(ctx context.Context, now time.Time) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, now)
	return err
}
