package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"suivi/internal/models"
)

// TaskRepo handles all task-related database operations.
type TaskRepo struct {
	db *sql.DB
}

// CreateTaskParams carries everything needed to insert a task.
type CreateTaskParams struct {
	Name           string
	Description    string
	Status         string
	Priority       string
	DueDate        *time.Time
	AssignedUserID int
	ImagePath      string
	CreatedBy      int
	ProductIDs     []int
}

const taskColumns = `id, name, description, status, priority, due_date, completed_at,
	image_path, assigned_user_id, created_by, updated_by, created_at, updated_at`

// Create inserts a task and its product links, returning the stored task.
func (r *TaskRepo) Create(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	var taskID int64
	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		result, err := tx.ExecContext(ctx,
			`INSERT INTO tasks (name, description, status, priority, due_date,
				image_path, assigned_user_id, created_by, updated_by)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			params.Name, params.Description, params.Status,
			nullableString(params.Priority), nullableTime(params.DueDate),
			nullableString(params.ImagePath), nullableID(params.AssignedUserID),
			params.CreatedBy, params.CreatedBy,
		)
		if err != nil {
			return fmt.Errorf("failed to insert task %q: %w", params.Name, err)
		}

		taskID, err = result.LastInsertId()
		if err != nil {
			return err
		}

		for _, productID := range params.ProductIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO product_task (task_id, product_id) VALUES (?, ?)`,
				taskID, productID,
			); err != nil {
				return fmt.Errorf("failed to link product %d: %w", productID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, int(taskID))
}

// GetByID retrieves a task with its product/project linkage.
func (r *TaskRepo) GetByID(ctx context.Context, id int) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)

	task, err := scanTask(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}

	products, err := r.loadProducts(ctx, []int{task.ID})
	if err != nil {
		return nil, err
	}
	task.Products = products[task.ID]
	return task, nil
}

// ListSince retrieves all tasks created at or after the cutoff, newest
// first, products attached. A zero cutoff returns every task.
func (r *TaskRepo) ListSince(ctx context.Context, since time.Time) ([]models.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks`
	var args []any
	if !since.IsZero() {
		query += ` WHERE created_at >= ?`
		args = append(args, since)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	return r.queryTasks(ctx, query, args...)
}

// ListByAssignee retrieves the tasks assigned to one user, newest first.
func (r *TaskRepo) ListByAssignee(ctx context.Context, userID int) ([]models.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE assigned_user_id = ?
		 ORDER BY created_at DESC, id DESC`,
		userID,
	)
}

// ListObserved retrieves tasks the user created but is not assigned to.
func (r *TaskRepo) ListObserved(ctx context.Context, userID int) ([]models.Task, error) {
	return r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 WHERE created_by = ? AND (assigned_user_id IS NULL OR assigned_user_id != ?)
		 ORDER BY created_at DESC, id DESC`,
		userID, userID,
	)
}

// ListPage retrieves one page of tasks wrapped in the pagination envelope.
func (r *TaskRepo) ListPage(ctx context.Context, page, perPage int) (*models.TaskPage, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}

	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&total); err != nil {
		return nil, err
	}

	tasks, err := r.queryTasks(ctx,
		`SELECT `+taskColumns+` FROM tasks
		 ORDER BY created_at DESC, id DESC
		 LIMIT ? OFFSET ?`,
		perPage, (page-1)*perPage,
	)
	if err != nil {
		return nil, err
	}

	totalPages := (total + perPage - 1) / perPage
	return &models.TaskPage{
		Data: tasks,
		Meta: models.PageMeta{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages},
	}, nil
}

// Update replaces a task's name and description.
func (r *TaskRepo) Update(ctx context.Context, id int, name, description string, updatedBy int) error {
	return r.exec(ctx,
		`UPDATE tasks
		 SET name = ?, description = ?, updated_by = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		name, description, updatedBy, id,
	)
}

// UpdateStatus moves a task to a new status. Reaching completed stamps
// completed_at; leaving it clears the stamp.
func (r *TaskRepo) UpdateStatus(ctx context.Context, id int, status string, updatedBy int) error {
	if status == models.StatusCompleted {
		return r.exec(ctx,
			`UPDATE tasks
			 SET status = ?, completed_at = CURRENT_TIMESTAMP, updated_by = ?, updated_at = CURRENT_TIMESTAMP
			 WHERE id = ?`,
			status, updatedBy, id,
		)
	}
	return r.exec(ctx,
		`UPDATE tasks
		 SET status = ?, completed_at = NULL, updated_by = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		status, updatedBy, id,
	)
}

// UpdatePriority changes a task's priority ("" clears it).
func (r *TaskRepo) UpdatePriority(ctx context.Context, id int, priority string, updatedBy int) error {
	return r.exec(ctx,
		`UPDATE tasks
		 SET priority = ?, updated_by = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		nullableString(priority), updatedBy, id,
	)
}

// UpdateDueDate changes a task's due date (nil clears it).
func (r *TaskRepo) UpdateDueDate(ctx context.Context, id int, due *time.Time, updatedBy int) error {
	return r.exec(ctx,
		`UPDATE tasks
		 SET due_date = ?, updated_by = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		nullableTime(due), updatedBy, id,
	)
}

// AssignUser reassigns a task. A userID of 0 unassigns it.
func (r *TaskRepo) AssignUser(ctx context.Context, taskID, userID, updatedBy int) error {
	var assignee any
	if userID != 0 {
		assignee = userID
	}
	return r.exec(ctx,
		`UPDATE tasks
		 SET assigned_user_id = ?, updated_by = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		assignee, updatedBy, taskID,
	)
}

// SetProducts replaces the task's product links, preserving the order of
// the given IDs.
func (r *TaskRepo) SetProducts(ctx context.Context, taskID int, productIDs []int) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM product_task WHERE task_id = ?`, taskID); err != nil {
			return err
		}
		for _, productID := range productIDs {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO product_task (task_id, product_id) VALUES (?, ?)`,
				taskID, productID,
			); err != nil {
				return fmt.Errorf("failed to link product %d: %w", productID, err)
			}
		}
		return nil
	})
}

// Delete removes a task; interventions and product links cascade.
func (r *TaskRepo) Delete(ctx context.Context, id int) error {
	return r.exec(ctx, `DELETE FROM tasks WHERE id = ?`, id)
}

// exec runs a single-row statement and maps "no rows affected" to
// models.ErrNotFound.
func (r *TaskRepo) exec(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// queryTasks runs a multi-row task query and attaches products in one
// follow-up query.
func (r *TaskRepo) queryTasks(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []models.Task{}
	var ids []int
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, *task)
		ids = append(ids, task.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	products, err := r.loadProducts(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		tasks[i].Products = products[tasks[i].ID]
	}
	return tasks, nil
}

// loadProducts fetches the ordered product/project linkage for a set of
// tasks in a single query.
func (r *TaskRepo) loadProducts(ctx context.Context, taskIDs []int) (map[int][]*models.Product, error) {
	result := make(map[int][]*models.Product)
	if len(taskIDs) == 0 {
		return result, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(taskIDs)), ",")
	args := make([]any, len(taskIDs))
	for i, id := range taskIDs {
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT pt.task_id, p.id, p.name, pr.id, pr.name, pr.description, pr.created_at
		 FROM product_task pt
		 JOIN products p ON p.id = pt.product_id
		 JOIN projects pr ON pr.id = p.project_id
		 WHERE pt.task_id IN (`+placeholders+`)
		 ORDER BY pt.id`,
		args...,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var taskID int
		product := &models.Product{Project: &models.Project{}}
		var description sql.NullString
		if err := rows.Scan(
			&taskID, &product.ID, &product.Name,
			&product.Project.ID, &product.Project.Name, &description, &product.Project.CreatedAt,
		); err != nil {
			return nil, err
		}
		product.Project.Description = description.String
		result[taskID] = append(result[taskID], product)
	}
	return result, rows.Err()
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*models.Task, error) {
	task := &models.Task{}
	var (
		description, priority, imagePath sql.NullString
		dueDate, completedAt             sql.NullTime
		assignedUserID                   sql.NullInt64
		createdBy, updatedBy             sql.NullInt64
	)

	if err := s.Scan(
		&task.ID, &task.Name, &description, &task.Status, &priority,
		&dueDate, &completedAt, &imagePath, &assignedUserID,
		&createdBy, &updatedBy, &task.CreatedAt, &task.UpdatedAt,
	); err != nil {
		return nil, err
	}

	task.Description = description.String
	task.Priority = priority.String
	task.ImagePath = imagePath.String
	task.DueDate = timeFromNull(dueDate)
	task.CompletedAt = timeFromNull(completedAt)
	task.AssignedUserID = int(assignedUserID.Int64)
	task.CreatedBy = int(createdBy.Int64)
	task.UpdatedBy = int(updatedBy.Int64)
	return task, nil
}
