// Package user implements accounts, authentication, and login sessions.
package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"suivi/internal/database"
	"suivi/internal/models"
)

// SessionLifetime is how long a login session stays valid.
const SessionLifetime = 24 * time.Hour

// Service defines all account-related business operations
type Service interface {
	Register(ctx context.Context, name, email, password, role string) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	ChangePassword(ctx context.Context, userID int, password string) error

	StartSession(ctx context.Context, userID int) (*models.Session, error)
	SessionUser(ctx context.Context, token string) (*models.User, error)
	EndSession(ctx context.Context, token string) error

	GetUser(ctx context.Context, id int) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.UserSummary, error)
	ToggleRole(ctx context.Context, id int) (*models.User, error)
	DeleteUser(ctx context.Context, id int) error
}

// service implements Service interface
type service struct {
	repo database.DataStore
	now  func() time.Time
}

// NewService creates a new user service
func NewService(repo database.DataStore) Service {
	return &service{
		repo: repo,
		now:  time.Now,
	}
}

// Register creates an account with a bcrypt password hash.
func (s *service) Register(ctx context.Context, name, email, password, role string) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, ErrEmptyName
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, ErrInvalidEmail
	}
	if len(password) < 6 {
		return nil, ErrPasswordTooShort
	}
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleAdmin && role != models.RoleUser {
		return nil, models.ErrInvalidRole
	}

	if _, err := s.repo.GetUserByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, models.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.repo.CreateUser(ctx, name, email, string(hash), role)
}

// Authenticate checks credentials and returns the account. It returns
// ErrInvalidCredentials for both unknown emails and wrong passwords so
// callers cannot probe which accounts exist.
func (s *service) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ChangePassword replaces an account's password.
func (s *service) ChangePassword(ctx context.Context, userID int, password string) error {
	if userID <= 0 {
		return ErrInvalidUserID
	}
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.repo.UpdateUserPassword(ctx, userID, string(hash))
}

// StartSession mints an opaque session token for a logged-in user.
func (s *service) StartSession(ctx context.Context, userID int) (*models.Session, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}

	session := &models.Session{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: s.now().Add(SessionLifetime),
	}
	if err := s.repo.CreateSession(ctx, session.Token, session.UserID, session.ExpiresAt); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return session, nil
}

// SessionUser resolves a session token to its account. Expired sessions
// are deleted on sight and reported as ErrSessionExpired.
func (s *service) SessionUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, ErrSessionExpired
	}

	session, err := s.repo.GetSession(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrSessionExpired
		}
		return nil, err
	}
	if session.Expired(s.now()) {
		_ = s.repo.DeleteSession(ctx, token)
		return nil, ErrSessionExpired
	}

	return s.repo.GetUserByID(ctx, session.UserID)
}

// EndSession logs a session out.
func (s *service) EndSession(ctx context.Context, token string) error {
	return s.repo.DeleteSession(ctx, token)
}

// GetUser retrieves one account.
func (s *service) GetUser(ctx context.Context, id int) (*models.User, error) {
	if id <= 0 {
		return nil, ErrInvalidUserID
	}
	return s.repo.GetUserByID(ctx, id)
}

// ListUsers retrieves every account with task counts.
func (s *service) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	return s.repo.ListUsers(ctx)
}

// ToggleRole flips an account between admin and user and returns the
// updated account.
func (s *service) ToggleRole(ctx context.Context, id int) (*models.User, error) {
	if id <= 0 {
		return nil, ErrInvalidUserID
	}

	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role := models.RoleAdmin
	if user.IsAdmin() {
		role = models.RoleUser
	}
	if err := s.repo.UpdateUserRole(ctx, id, role); err != nil {
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	user.Role = role
	return user, nil
}

// DeleteUser removes an account.
func (s *service) DeleteUser(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidUserID
	}
	return s.repo.DeleteUser(ctx, id)
}
