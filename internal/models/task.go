package models

import "time"

// Task represents a single ticket in the tracker.
// Products carries the optional project linkage: by convention the first
// product's project is treated as "the task's project" everywhere a single
// project is displayed or filtered on.
type Task struct {
	ID             int        `json:"id"`
	Name           string     `json:"name"`
	Description    string     `json:"description"`
	Status         string     `json:"status"`
	Priority       string     `json:"priority,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	AssignedUserID int        `json:"assigned_user_id"`
	ImagePath      string     `json:"image_path,omitempty"`
	CreatedBy      int        `json:"created_by"`
	UpdatedBy      int        `json:"updated_by"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	Products       []*Product `json:"products,omitempty"`
}

// ProjectName returns the name of the first associated product's project,
// or "" when the task has no products or no project linkage.
func (t *Task) ProjectName() string {
	if len(t.Products) == 0 || t.Products[0] == nil || t.Products[0].Project == nil {
		return ""
	}
	return t.Products[0].Project.Name
}

// IsCompleted reports whether the task has reached the completed status.
func (t *Task) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsActive reports whether the task is still open (pending or in progress).
func (t *Task) IsActive() bool {
	return t.Status == StatusPending || t.Status == StatusInProgress
}

// TaskPage is the paginated envelope returned by list endpoints.
type TaskPage struct {
	Data []Task   `json:"data"`
	Meta PageMeta `json:"meta"`
}

// PageMeta describes the position of a page within the full result set.
type PageMeta struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}
