package models

import "time"

// Project groups products (and through them, tasks) under a single name.
type Project struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Product is a deliverable belonging to a project. Tasks reference products
// rather than projects directly.
type Product struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Project *Project `json:"project,omitempty"`
}
