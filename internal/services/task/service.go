// Package task implements the business rules around tickets: validation,
// assignment notifications, and change fanout.
package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"suivi/internal/database"
	"suivi/internal/events"
	"suivi/internal/models"
)

// Service defines all task-related business operations
type Service interface {
	// Read operations
	GetTask(ctx context.Context, taskID int) (*models.Task, error)
	ListTasks(ctx context.Context) ([]models.Task, error)
	ListTasksSince(ctx context.Context, since time.Time) ([]models.Task, error)
	ListMyTasks(ctx context.Context, userID int) ([]models.Task, error)
	ListObservedTasks(ctx context.Context, userID int) ([]models.Task, error)
	ListTaskPage(ctx context.Context, page, perPage int) (*models.TaskPage, error)

	// Write operations
	CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error)
	UpdateTask(ctx context.Context, req UpdateTaskRequest) error
	ChangeStatus(ctx context.Context, taskID int, status string, actorID int) error
	AssignTask(ctx context.Context, taskID, userID, actorID int) error
	SetProducts(ctx context.Context, taskID int, productIDs []int) error
	DeleteTask(ctx context.Context, taskID int) error
}

// CreateTaskRequest encapsulates all data needed to create a task
type CreateTaskRequest struct {
	Name           string
	Description    string
	Status         string // Optional: "" means pending
	Priority       string // Optional: "" means unset
	DueDate        *time.Time
	AssignedUserID int // Optional: 0 means unassigned
	CreatedBy      int
	ProductIDs     []int
}

// UpdateTaskRequest encapsulates all data needed to update a task.
// Fields with pointers are optional - nil means don't update.
type UpdateTaskRequest struct {
	TaskID      int
	ActorID     int
	Name        *string
	Description *string
	Priority    *string     // pointer to "" clears the priority
	DueDate     **time.Time // pointer to nil clears the due date
}

// service implements Service interface
type service struct {
	repo        database.DataStore
	eventClient events.EventPublisher
}

// NewService creates a new task service
func NewService(repo database.DataStore, eventClient events.EventPublisher) Service {
	return &service{
		repo:        repo,
		eventClient: eventClient,
	}
}

// CreateTask handles task creation with validation, assignment
// notification, and change fanout.
func (s *service) CreateTask(ctx context.Context, req CreateTaskRequest) (*models.Task, error) {
	if err := validateCreateTask(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StatusPending
	}

	task, err := s.repo.CreateTask(ctx, database.CreateTaskParams{
		Name:           req.Name,
		Description:    req.Description,
		Status:         status,
		Priority:       req.Priority,
		DueDate:        req.DueDate,
		AssignedUserID: req.AssignedUserID,
		CreatedBy:      req.CreatedBy,
		ProductIDs:     req.ProductIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	if req.AssignedUserID != 0 && req.AssignedUserID != req.CreatedBy {
		s.notifyAssignment(ctx, task, req.AssignedUserID)
	}
	s.publishChange(req.AssignedUserID)

	return task, nil
}

// UpdateTask applies partial field updates with validation.
func (s *service) UpdateTask(ctx context.Context, req UpdateTaskRequest) error {
	if req.TaskID <= 0 {
		return ErrInvalidTaskID
	}
	if req.Name != nil && *req.Name == "" {
		return ErrEmptyName
	}
	if req.Name != nil && len(*req.Name) > 255 {
		return ErrNameTooLong
	}
	if req.Priority != nil && !models.ValidPriority(*req.Priority) {
		return ErrInvalidPriority
	}

	if req.Name != nil || req.Description != nil {
		name := ""
		description := ""
		if req.Name == nil || req.Description == nil {
			current, err := s.repo.GetTaskByID(ctx, req.TaskID)
			if err != nil {
				return fmt.Errorf("failed to get task: %w", err)
			}
			name = current.Name
			description = current.Description
		}
		if req.Name != nil {
			name = *req.Name
		}
		if req.Description != nil {
			description = *req.Description
		}
		if err := s.repo.UpdateTask(ctx, req.TaskID, name, description, req.ActorID); err != nil {
			return fmt.Errorf("failed to update task: %w", err)
		}
	}

	if req.Priority != nil {
		if err := s.repo.UpdateTaskPriority(ctx, req.TaskID, *req.Priority, req.ActorID); err != nil {
			return fmt.Errorf("failed to update priority: %w", err)
		}
	}

	if req.DueDate != nil {
		if err := s.repo.UpdateTaskDueDate(ctx, req.TaskID, *req.DueDate, req.ActorID); err != nil {
			return fmt.Errorf("failed to update due date: %w", err)
		}
	}

	s.publishChange(0)
	return nil
}

// ChangeStatus moves a task through its lifecycle. Completing a task
// stamps its completion time; reopening clears it.
func (s *service) ChangeStatus(ctx context.Context, taskID int, status string, actorID int) error {
	if taskID <= 0 {
		return ErrInvalidTaskID
	}
	if !models.ValidStatus(status) {
		return ErrInvalidStatus
	}

	task, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.Status == status {
		return nil
	}

	if err := s.repo.UpdateTaskStatus(ctx, taskID, status, actorID); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	if status == models.StatusCompleted && task.AssignedUserID != 0 && task.AssignedUserID != actorID {
		message := fmt.Sprintf("Le ticket %q a été clôturé", task.Name)
		if _, err := s.repo.CreateNotification(ctx, task.AssignedUserID, message, models.CategoryTask); err != nil {
			return fmt.Errorf("failed to notify assignee: %w", err)
		}
	}

	s.publishChange(task.AssignedUserID)
	return nil
}

// AssignTask reassigns a task (userID 0 unassigns) and notifies the new
// assignee.
func (s *service) AssignTask(ctx context.Context, taskID, userID, actorID int) error {
	if taskID <= 0 {
		return ErrInvalidTaskID
	}
	if userID < 0 {
		return ErrInvalidUserID
	}

	task, err := s.repo.GetTaskByID(ctx, taskID)
	if err != nil {
		return err
	}
	if userID != 0 {
		if _, err := s.repo.GetUserByID(ctx, userID); err != nil {
			return fmt.Errorf("assignee lookup: %w", err)
		}
	}

	if err := s.repo.AssignTask(ctx, taskID, userID, actorID); err != nil {
		return fmt.Errorf("failed to assign task: %w", err)
	}

	if userID != 0 && userID != actorID {
		s.notifyAssignment(ctx, task, userID)
	}
	s.publishChange(userID)
	return nil
}

// SetProducts replaces a task's product linkage. The first given product
// determines the task's project everywhere a single project is shown.
func (s *service) SetProducts(ctx context.Context, taskID int, productIDs []int) error {
	if taskID <= 0 {
		return ErrInvalidTaskID
	}
	for _, id := range productIDs {
		if id <= 0 {
			return ErrInvalidProductID
		}
	}

	if err := s.repo.SetTaskProducts(ctx, taskID, productIDs); err != nil {
		return fmt.Errorf("failed to set products: %w", err)
	}

	s.publishChange(0)
	return nil
}

// DeleteTask removes a task and everything hanging off it.
func (s *service) DeleteTask(ctx context.Context, taskID int) error {
	if taskID <= 0 {
		return ErrInvalidTaskID
	}

	if err := s.repo.DeleteTask(ctx, taskID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.publishChange(0)
	return nil
}

// GetTask retrieves one task with its product linkage.
func (s *service) GetTask(ctx context.Context, taskID int) (*models.Task, error) {
	if taskID <= 0 {
		return nil, ErrInvalidTaskID
	}
	return s.repo.GetTaskByID(ctx, taskID)
}

// ListTasks retrieves every task, newest first.
func (s *service) ListTasks(ctx context.Context) ([]models.Task, error) {
	return s.repo.ListTasksSince(ctx, time.Time{})
}

// ListTasksSince retrieves tasks created at or after the cutoff.
func (s *service) ListTasksSince(ctx context.Context, since time.Time) ([]models.Task, error) {
	return s.repo.ListTasksSince(ctx, since)
}

// ListMyTasks retrieves the tasks assigned to a user.
func (s *service) ListMyTasks(ctx context.Context, userID int) ([]models.Task, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	return s.repo.ListTasksByAssignee(ctx, userID)
}

// ListObservedTasks retrieves tasks the user created but does not hold.
func (s *service) ListObservedTasks(ctx context.Context, userID int) ([]models.Task, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	return s.repo.ListObservedTasks(ctx, userID)
}

// ListTaskPage retrieves one page of tasks.
func (s *service) ListTaskPage(ctx context.Context, page, perPage int) (*models.TaskPage, error) {
	return s.repo.ListTaskPage(ctx, page, perPage)
}

func (s *service) notifyAssignment(ctx context.Context, task *models.Task, userID int) {
	message := fmt.Sprintf("Le ticket %q vous a été assigné", task.Name)
	// Notification failure must not fail the operation itself.
	if _, err := s.repo.CreateNotification(ctx, userID, message, models.CategoryTask); err != nil {
		slog.Error("failed to notify assignee", "task_id", task.ID, "user_id", userID, "error", err)
	}
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

func validateCreateTask(req CreateTaskRequest) error {
	if req.Name == "" {
		return ErrEmptyName
	}
	if len(req.Name) > 255 {
		return ErrNameTooLong
	}
	if req.Status != "" && !models.ValidStatus(req.Status) {
		return ErrInvalidStatus
	}
	if !models.ValidPriority(req.Priority) {
		return ErrInvalidPriority
	}
	if req.AssignedUserID < 0 {
		return ErrInvalidUserID
	}
	for _, id := range req.ProductIDs {
		if id <= 0 {
			return ErrInvalidProductID
		}
	}
	return nil
}
