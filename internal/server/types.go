package server

// LoginRequest is the payload for /api/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterRequest is the payload for /api/register
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// CreateTaskRequest is the payload for POST /api/tasks
type CreateTaskRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	Description    string `json:"description"`
	Status         string `json:"status" validate:"omitempty,oneof=pending in-progress completed"`
	Priority       string `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate        string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
	AssignedUserID int    `json:"assignedUserId" validate:"omitempty,min=1"`
	ProductIDs     []int  `json:"productIds" validate:"dive,min=1"`
}

// UpdateTaskRequest is the payload for PATCH /api/tasks/{id}.
// Nil fields are left unchanged; an empty priority or due date clears it.
type UpdateTaskRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	Description *string `json:"description"`
	Priority    *string `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *string `json:"dueDate" validate:"omitempty,datetime=2006-01-02"`
}

// ChangeStatusRequest is the payload for PATCH /api/tasks/{id}/status
type ChangeStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending in-progress completed"`
}

// AssignTaskRequest is the payload for PATCH /api/tasks/{id}/assignee.
// UserID 0 unassigns the task.
type AssignTaskRequest struct {
	UserID int `json:"userId" validate:"min=0"`
}

// SetProductsRequest is the payload for PUT /api/tasks/{id}/products
type SetProductsRequest struct {
	ProductIDs []int `json:"productIds" validate:"dive,min=1"`
}

// LogInterventionRequest is the payload for POST /api/tasks/{id}/interventions
type LogInterventionRequest struct {
	Description string `json:"description" validate:"required,max=1000"`
}

// ReviewInterventionRequest is the payload for PATCH /api/interventions/{id}/status
type ReviewInterventionRequest struct {
	Status string `json:"status" validate:"required,oneof=approved refused"`
}

// ProjectRequest is the payload for creating or updating a project
type ProjectRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// AddProductRequest is the payload for POST /api/projects/{id}/products
type AddProductRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}
