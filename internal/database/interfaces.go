package database

import (
	"context"
	"time"

	"suivi/internal/models"
)

// DataStore defines the unified interface for all data operations needed
// by the services. This interface enables mocking for unit testing.
type DataStore interface {
	// Tasks
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)
	GetTaskByID(ctx context.Context, id int) (*models.Task, error)
	ListTasksSince(ctx context.Context, since time.Time) ([]models.Task, error)
	ListTasksByAssignee(ctx context.Context, userID int) ([]models.Task, error)
	ListObservedTasks(ctx context.Context, userID int) ([]models.Task, error)
	ListTaskPage(ctx context.Context, page, perPage int) (*models.TaskPage, error)
	UpdateTask(ctx context.Context, id int, name, description string, updatedBy int) error
	UpdateTaskStatus(ctx context.Context, id int, status string, updatedBy int) error
	UpdateTaskPriority(ctx context.Context, id int, priority string, updatedBy int) error
	UpdateTaskDueDate(ctx context.Context, id int, due *time.Time, updatedBy int) error
	AssignTask(ctx context.Context, taskID, userID, updatedBy int) error
	SetTaskProducts(ctx context.Context, taskID int, productIDs []int) error
	DeleteTask(ctx context.Context, id int) error

	// Projects and products
	CreateProject(ctx context.Context, name, description string) (*models.Project, error)
	GetProjectByID(ctx context.Context, id int) (*models.Project, error)
	GetProjectByName(ctx context.Context, name string) (*models.Project, error)
	ListProjects(ctx context.Context) ([]models.Project, error)
	UpdateProject(ctx context.Context, id int, name, description string) error
	DeleteProject(ctx context.Context, id int) error
	CreateProduct(ctx context.Context, projectID int, name string) (*models.Product, error)
	GetProductByID(ctx context.Context, id int) (*models.Product, error)
	ListProducts(ctx context.Context, projectID int) ([]models.Product, error)
	DeleteProduct(ctx context.Context, id int) error

	// Interventions
	CreateIntervention(ctx context.Context, taskID, userID int, description string) (*models.Intervention, error)
	GetInterventionByID(ctx context.Context, id int) (*models.Intervention, error)
	ListInterventions(ctx context.Context) ([]models.Intervention, error)
	ListInterventionsByTask(ctx context.Context, taskID int) ([]models.Intervention, error)
	UpdateInterventionStatus(ctx context.Context, id int, status string) error
	DeleteIntervention(ctx context.Context, id int) error
	SummarizeInterventionsByProject(ctx context.Context) ([]models.InterventionSummary, error)

	// Notifications
	CreateNotification(ctx context.Context, userID int, message, category string) (*models.Notification, error)
	ListNotificationsByUser(ctx context.Context, userID int) ([]models.Notification, error)
	CountUnreadNotifications(ctx context.Context, userID int) (int, error)
	MarkNotificationRead(ctx context.Context, id string) error
	MarkAllNotificationsRead(ctx context.Context, userID int) error
	ClearNotifications(ctx context.Context, userID int) error

	// Users
	CreateUser(ctx context.Context, name, email, passwordHash, role string) (*models.User, error)
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.UserSummary, error)
	UpdateUserRole(ctx context.Context, id int, role string) error
	UpdateUserPassword(ctx context.Context, id int, passwordHash string) error
	DeleteUser(ctx context.Context, id int) error

	// Sessions
	CreateSession(ctx context.Context, token string, userID int, expiresAt time.Time) error
	GetSession(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
	PurgeSessions(ctx context.Context, now time.Time) error
}
