package models

import "time"

// Notification is a per-user message generated when a task is assigned,
// an intervention changes state, and so on. IDs are UUID strings so they
// can be minted by any layer without a round trip to the database.
type Notification struct {
	ID        string     `json:"id"`
	UserID    int        `json:"user_id"`
	Message   string     `json:"message"`
	Category  string     `json:"category,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// IsRead reports whether the notification has been marked read.
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}
