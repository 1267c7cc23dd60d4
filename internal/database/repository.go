package database

import (
	"context"
	"database/sql"
	"time"

	"suivi/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*TaskRepo
	*ProjectRepo
	*InterventionRepo
	*NotificationRepo
	*UserRepo
	*SessionRepo
}

// NewRepository creates a new Repository instance wrapping the given
// database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		TaskRepo:         &TaskRepo{db: db},
		ProjectRepo:      &ProjectRepo{db: db},
		InterventionRepo: &InterventionRepo{db: db},
		NotificationRepo: &NotificationRepo{db: db},
		UserRepo:         &UserRepo{db: db},
		SessionRepo:      &SessionRepo{db: db},
	}
}

// Wrapper methods for TaskRepo; embedding alone cannot expose them since
// method names collide across repos.
func (r *Repository) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	return r.TaskRepo.Create(ctx, params)
}

func (r *Repository) GetTaskByID(ctx context.Context, id int) (*models.Task, error) {
	return r.TaskRepo.GetByID(ctx, id)
}

func (r *Repository) ListTasksSince(ctx context.Context, since time.Time) ([]models.Task, error) {
	return r.TaskRepo.ListSince(ctx, since)
}

func (r *Repository) ListTasksByAssignee(ctx context.Context, userID int) ([]models.Task, error) {
	return r.TaskRepo.ListByAssignee(ctx, userID)
}

func (r *Repository) ListObservedTasks(ctx context.Context, userID int) ([]models.Task, error) {
	return r.TaskRepo.ListObserved(ctx, userID)
}

func (r *Repository) ListTaskPage(ctx context.Context, page, perPage int) (*models.TaskPage, error) {
	return r.TaskRepo.ListPage(ctx, page, perPage)
}

func (r *Repository) UpdateTask(ctx context.Context, id int, name, description string, updatedBy int) error {
	return r.TaskRepo.Update(ctx, id, name, description, updatedBy)
}

func (r *Repository) UpdateTaskStatus(ctx context.Context, id int, status string, updatedBy int) error {
	return r.TaskRepo.UpdateStatus(ctx, id, status, updatedBy)
}

func (r *Repository) UpdateTaskPriority(ctx context.Context, id int, priority string, updatedBy int) error {
	return r.TaskRepo.UpdatePriority(ctx, id, priority, updatedBy)
}

func (r *Repository) UpdateTaskDueDate(ctx context.Context, id int, due *time.Time, updatedBy int) error {
	return r.TaskRepo.UpdateDueDate(ctx, id, due, updatedBy)
}

func (r *Repository) AssignTask(ctx context.Context, taskID, userID, updatedBy int) error {
	return r.TaskRepo.AssignUser(ctx, taskID, userID, updatedBy)
}

func (r *Repository) SetTaskProducts(ctx context.Context, taskID int, productIDs []int) error {
	return r.TaskRepo.SetProducts(ctx, taskID, productIDs)
}

func (r *Repository) DeleteTask(ctx context.Context, id int) error {
	return r.TaskRepo.Delete(ctx, id)
}

// Wrapper methods for ProjectRepo
func (r *Repository) CreateProject(ctx context.Context, name, description string) (*models.Project, error) {
	return r.ProjectRepo.Create(ctx, name, description)
}

func (r *Repository) GetProjectByID(ctx context.Context, id int) (*models.Project, error) {
	return r.ProjectRepo.GetByID(ctx, id)
}

func (r *Repository) GetProjectByName(ctx context.Context, name string) (*models.Project, error) {
	return r.ProjectRepo.GetByName(ctx, name)
}

func (r *Repository) ListProjects(ctx context.Context) ([]models.Project, error) {
	return r.ProjectRepo.List(ctx)
}

func (r *Repository) UpdateProject(ctx context.Context, id int, name, description string) error {
	return r.ProjectRepo.Update(ctx, id, name, description)
}

func (r *Repository) DeleteProject(ctx context.Context, id int) error {
	return r.ProjectRepo.Delete(ctx, id)
}

func (r *Repository) CreateProduct(ctx context.Context, projectID int, name string) (*models.Product, error) {
	return r.ProjectRepo.CreateProduct(ctx, projectID, name)
}

func (r *Repository) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	return r.ProjectRepo.GetProduct(ctx, id)
}

func (r *Repository) ListProducts(ctx context.Context, projectID int) ([]models.Product, error) {
	return r.ProjectRepo.ListProducts(ctx, projectID)
}

func (r *Repository) DeleteProduct(ctx context.Context, id int) error {
	return r.ProjectRepo.DeleteProduct(ctx, id)
}

// Wrapper methods for InterventionRepo
func (r *Repository) CreateIntervention(ctx context.Context, taskID, userID int, description string) (*models.Intervention, error) {
	return r.InterventionRepo.Create(ctx, taskID, userID, description)
}

func (r *Repository) GetInterventionByID(ctx context.Context, id int) (*models.Intervention, error) {
	return r.InterventionRepo.GetByID(ctx, id)
}

func (r *Repository) ListInterventions(ctx context.Context) ([]models.Intervention, error) {
	return r.InterventionRepo.List(ctx)
}

func (r *Repository) ListInterventionsByTask(ctx context.Context, taskID int) ([]models.Intervention, error) {
	return r.InterventionRepo.ListByTask(ctx, taskID)
}

func (r *Repository) UpdateInterventionStatus(ctx context.Context, id int, status string) error {
	return r.InterventionRepo.UpdateStatus(ctx, id, status)
}

func (r *Repository) DeleteIntervention(ctx context.Context, id int) error {
	return r.InterventionRepo.Delete(ctx, id)
}

func (r *Repository) SummarizeInterventionsByProject(ctx context.Context) ([]models.InterventionSummary, error) {
	return r.InterventionRepo.SummarizeByProject(ctx)
}

// Wrapper methods for NotificationRepo
func (r *Repository) CreateNotification(ctx context.Context, userID int, message, category string) (*models.Notification, error) {
	return r.NotificationRepo.Create(ctx, userID, message, category)
}

func (r *Repository) ListNotificationsByUser(ctx context.Context, userID int) ([]models.Notification, error) {
	return r.NotificationRepo.ListByUser(ctx, userID)
}

func (r *Repository) CountUnreadNotifications(ctx context.Context, userID int) (int, error) {
	return r.NotificationRepo.CountUnread(ctx, userID)
}

func (r *Repository) MarkNotificationRead(ctx context.Context, id string) error {
	return r.NotificationRepo.MarkRead(ctx, id)
}

func (r *Repository) MarkAllNotificationsRead(ctx context.Context, userID int) error {
	return r.NotificationRepo.MarkAllRead(ctx, userID)
}

func (r *Repository) ClearNotifications(ctx context.Context, userID int) error {
	return r.NotificationRepo.ClearAll(ctx, userID)
}

// Wrapper methods for UserRepo
func (r *Repository) CreateUser(ctx context.Context, name, email, passwordHash, role string) (*models.User, error) {
	return r.UserRepo.Create(ctx, name, email, passwordHash, role)
}

func (r *Repository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	return r.UserRepo.GetByID(ctx, id)
}

func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.UserRepo.GetByEmail(ctx, email)
}

func (r *Repository) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	return r.UserRepo.List(ctx)
}

func (r *Repository) UpdateUserRole(ctx context.Context, id int, role string) error {
	return r.UserRepo.UpdateRole(ctx, id, role)
}

func (r *Repository) UpdateUserPassword(ctx context.Context, id int, passwordHash string) error {
	return r.UserRepo.UpdatePassword(ctx, id, passwordHash)
}

func (r *Repository) DeleteUser(ctx context.Context, id int) error {
	return r.UserRepo.Delete(ctx, id)
}

// Wrapper methods for SessionRepo
func (r *Repository) CreateSession(ctx context.Context, token string, userID int, expiresAt time.Time) error {
	return r.SessionRepo.Create(ctx, token, userID, expiresAt)
}

func (r *Repository) GetSession(ctx context.Context, token string) (*models.Session, error) {
	return r.SessionRepo.Get(ctx, token)
}

func (r *Repository) DeleteSession(ctx context.Context, token string) error {
	return r.SessionRepo.Delete(ctx, token)
}

func (r *Repository) PurgeSessions(ctx context.Context, now time.Time) error {
	return r.SessionRepo.Purge(ctx, now)
}
