// Package intervention implements the review workflow for logged
// interventions: creation, approval/refusal, and per-project summaries.
package intervention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"suivi/internal/database"
	"suivi/internal/events"
	"suivi/internal/models"
)

// Service defines all intervention-related business operations
type Service interface {
	GetIntervention(ctx context.Context, id int) (*models.Intervention, error)
	ListInterventions(ctx context.Context) ([]models.Intervention, error)
	ListByTask(ctx context.Context, taskID int) ([]models.Intervention, error)
	SummarizeByProject(ctx context.Context) ([]models.InterventionSummary, error)

	LogIntervention(ctx context.Context, taskID, userID int, description string) (*models.Intervention, error)
	Review(ctx context.Context, id int, status string, reviewerID int) error
	DeleteIntervention(ctx context.Context, id int) error
}

// service implements Service interface
type service struct {
	repo        database.DataStore
	eventClient events.EventPublisher
}

// NewService creates a new intervention service
func NewService(repo database.DataStore, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// LogIntervention records a new intervention against a task. It starts in
// pending until a reviewer decides on it.
func (s *service) LogIntervention(ctx context.Context, taskID, userID int, description string) (*models.Intervention, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	if description == "" {
		return nil, ErrEmptyDescription
	}
	if len(description) > 1000 {
		return nil, ErrDescriptionTooLong
	}

	if _, err := s.repo.GetTaskByID(ctx, taskID); err != nil {
		return nil, fmt.Errorf("task lookup: %w", err)
	}

	intervention, err := s.repo.CreateIntervention(ctx, taskID, userID, description)
	if err != nil {
		return nil, fmt.Errorf("failed to create intervention: %w", err)
	}

	s.publishChange(userID)
	return intervention, nil
}

// Review decides on a pending intervention. Re-reviewing a decided
// intervention is allowed so an admin can correct a mistake. The author
// is notified of the outcome.
func (s *service) Review(ctx context.Context, id int, status string, reviewerID int) error {
	if id <= 0 {
		return ErrInvalidInterventionID
	}
	if !models.ValidInterventionStatus(status) || status == models.InterventionPending {
		return ErrInvalidReviewStatus
	}

	intervention, err := s.repo.GetInterventionByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateInterventionStatus(ctx, id, status); err != nil {
		return fmt.Errorf("failed to update intervention: %w", err)
	}

	if intervention.UserID != reviewerID {
		outcome := "approuvée"
		if status == models.InterventionRefused {
			outcome = "refusée"
		}
		message := fmt.Sprintf("Votre intervention #%d a été %s", intervention.ID, outcome)
		// The review stands even when the notification cannot be stored.
		if _, err := s.repo.CreateNotification(ctx, intervention.UserID, message, models.CategoryIntervention); err != nil {
			slog.Error("failed to notify intervention author", "intervention_id", intervention.ID, "user_id", intervention.UserID, "error", err)
		}
	}

	s.publishChange(intervention.UserID)
	return nil
}

// DeleteIntervention removes an intervention.
func (s *service) DeleteIntervention(ctx context.Context, id int) error {
	if id <= 0 {
		return ErrInvalidInterventionID
	}
	if err := s.repo.DeleteIntervention(ctx, id); err != nil {
		return fmt.Errorf("failed to delete intervention: %w", err)
	}
	s.publishChange(0)
	return nil
}

// GetIntervention retrieves one intervention.
func (s *service) GetIntervention(ctx context.Context, id int) (*models.Intervention, error) {
	if id <= 0 {
		return nil, ErrInvalidInterventionID
	}
	return s.repo.GetInterventionByID(ctx, id)
}

// ListInterventions retrieves every intervention, newest first.
func (s *service) ListInterventions(ctx context.Context) ([]models.Intervention, error) {
	return s.repo.ListInterventions(ctx)
}

// ListByTask retrieves one task's interventions.
func (s *service) ListByTask(ctx context.Context, taskID int) ([]models.Intervention, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	return s.repo.ListInterventionsByTask(ctx, taskID)
}

// SummarizeByProject tallies interventions per project for the dashboard.
func (s *service) SummarizeByProject(ctx context.Context) ([]models.InterventionSummary, error) {
	return s.repo.SummarizeInterventionsByProject(ctx)
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
