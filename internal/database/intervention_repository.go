package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"suivi/internal/models"
)

// InterventionRepo handles all intervention-related database operations.
type InterventionRepo struct {
	db *sql.DB
}

// Create logs a new intervention against a task, starting in pending.
func (r *InterventionRepo) Create(ctx context.Context, taskID, userID int, description string) (*models.Intervention, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO interventions (task_id, user_id, description, status)
		 VALUES (?, ?, ?, ?)`,
		taskID, userID, description, models.InterventionPending,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert intervention for task %d: %w", taskID, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetByID(ctx, int(id))
}

// GetByID retrieves one intervention.
func (r *InterventionRepo) GetByID(ctx context.Context, id int) (*models.Intervention, error) {
	intervention := &models.Intervention{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, task_id, user_id, description, status, created_at
		 FROM interventions WHERE id = ?`, id,
	).Scan(&intervention.ID, &intervention.TaskID, &intervention.UserID,
		&intervention.Description, &intervention.Status, &intervention.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return intervention, nil
}

// ListByTask retrieves a task's interventions, newest first.
func (r *InterventionRepo) ListByTask(ctx context.Context, taskID int) ([]models.Intervention, error) {
	return r.query(ctx,
		`SELECT id, task_id, user_id, description, status, created_at
		 FROM interventions WHERE task_id = ?
		 ORDER BY created_at DESC, id DESC`, taskID)
}

// List retrieves every intervention, newest first.
func (r *InterventionRepo) List(ctx context.Context) ([]models.Intervention, error) {
	return r.query(ctx,
		`SELECT id, task_id, user_id, description, status, created_at
		 FROM interventions
		 ORDER BY created_at DESC, id DESC`)
}

// UpdateStatus moves an intervention to a new review status.
func (r *InterventionRepo) UpdateStatus(ctx context.Context, id int, status string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE interventions SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// Delete removes an intervention.
func (r *InterventionRepo) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM interventions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// SummarizeByProject tallies interventions per project, ordered by project
// name. A task's project is its first linked product's project; tasks with
// no linkage are grouped under the empty name.
func (r *InterventionRepo) SummarizeByProject(ctx context.Context) ([]models.InterventionSummary, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT COALESCE(pr.name, '') AS project,
		        COUNT(*) AS interventions,
		        SUM(CASE WHEN i.status = 'pending'  THEN 1 ELSE 0 END) AS pending,
		        SUM(CASE WHEN i.status = 'approved' THEN 1 ELSE 0 END) AS approved,
		        SUM(CASE WHEN i.status = 'refused'  THEN 1 ELSE 0 END) AS refused
		 FROM interventions i
		 JOIN tasks t ON t.id = i.task_id
		 LEFT JOIN (
		     SELECT task_id, MIN(id) AS link_id
		     FROM product_task
		     GROUP BY task_id
		 ) first_link ON first_link.task_id = t.id
		 LEFT JOIN product_task pt ON pt.id = first_link.link_id
		 LEFT JOIN products p ON p.id = pt.product_id
		 LEFT JOIN projects pr ON pr.id = p.project_id
		 GROUP BY project
		 ORDER BY project`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []models.InterventionSummary{}
	for rows.Next() {
		var s models.InterventionSummary
		if err := rows.Scan(&s.Project, &s.Interventions, &s.Pending, &s.Approved, &s.Refused); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *InterventionRepo) query(ctx context.Context, query string, args ...any) ([]models.Intervention, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interventions := []models.Intervention{}
	for rows.Next() {
		var i models.Intervention
		if err := rows.Scan(&i.ID, &i.TaskID, &i.UserID, &i.Description, &i.Status, &i.CreatedAt); err != nil {
			return nil, err
		}
		interventions = append(interventions, i)
	}
	return interventions, rows.Err()
}
