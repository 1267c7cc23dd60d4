package models

// ============================================================================
// TASK STATUS CONSTANTS
// ============================================================================

// Task statuses. These are the only three values ever stored or served.
const (
	StatusPending    = "pending"
	StatusInProgress = "in-progress"
	StatusCompleted  = "completed"
)

// TaskStatuses lists all valid statuses in display order.
var TaskStatuses = []string{StatusPending, StatusInProgress, StatusCompleted}

// ValidStatus reports whether s is one of the three task statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

// ============================================================================
// PRIORITY CONSTANTS
// ============================================================================

// Task priorities. Priority is optional on a task; the empty string means
// unset and is rendered as low, but never matches a priority filter.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// ValidPriority reports whether p is a known priority or unset.
func ValidPriority(p string) bool {
	return p == "" || p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// ============================================================================
// ROLE CONSTANTS
// ============================================================================

// User roles.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ============================================================================
// INTERVENTION STATUS CONSTANTS
// ============================================================================

// Intervention statuses.
const (
	InterventionPending  = "pending"
	InterventionApproved = "approved"
	InterventionRefused  = "refused"
)

// ValidInterventionStatus reports whether s is a known intervention status.
func ValidInterventionStatus(s string) bool {
	return s == InterventionPending || s == InterventionApproved || s == InterventionRefused
}

// ============================================================================
// NOTIFICATION CATEGORIES
// ============================================================================

// Notification categories used by the services when publishing messages.
const (
	CategoryTask         = "task"
	CategoryIntervention = "intervention"
	CategorySystem       = "system"
)
