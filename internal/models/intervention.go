package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Intervention is a logged action against a task. Status is one of
// InterventionPending, InterventionApproved or InterventionRefused.
type Intervention struct {
	ID          int       `json:"id"`
	TaskID      int       `json:"task_id"`
	UserID      int       `json:"user_id"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

// InterventionSummary is the per-project aggregate fed to the dashboard.
// Pending/Approved/Refused are independent tallies, not a partition of
// Interventions: an upstream source may count them over different windows,
// so they need not sum to the total.
type InterventionSummary struct {
	Project       string `json:"project"`
	Interventions int    `json:"interventions"`
	Pending       int    `json:"pending"`
	Approved      int    `json:"approved"`
	Refused       int    `json:"refused"`
}

// UnmarshalJSON accepts count fields as either JSON numbers or numeric
// strings. Aggregation queries routinely surface counts as strings once
// they cross a wire, and the dashboard must not care.
func (s *InterventionSummary) UnmarshalJSON(data []byte) error {
	var raw struct {
		Project       string          `json:"project"`
		Interventions json.RawMessage `json:"interventions"`
		Pending       json.RawMessage `json:"pending"`
		Approved      json.RawMessage `json:"approved"`
		Refused       json.RawMessage `json:"refused"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	s.Project = raw.Project

	var err error
	if s.Interventions, err = coerceCount(raw.Interventions); err != nil {
		return fmt.Errorf("interventions: %w", err)
	}
	if s.Pending, err = coerceCount(raw.Pending); err != nil {
		return fmt.Errorf("pending: %w", err)
	}
	if s.Approved, err = coerceCount(raw.Approved); err != nil {
		return fmt.Errorf("approved: %w", err)
	}
	if s.Refused, err = coerceCount(raw.Refused); err != nil {
		return fmt.Errorf("refused: %w", err)
	}
	return nil
}

// coerceCount reads an int from a raw JSON value that may be a number,
// a numeric string, or absent (nil/null reads as 0).
func coerceCount(raw json.RawMessage) (int, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return 0, nil
	}

	var n int
	if err := json.Unmarshal(raw, &n); err == nil {
		return n, nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err != nil {
		return 0, fmt.Errorf("value %s is neither number nor string", raw)
	}
	n, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("parse %q: %w", str, err)
	}
	return n, nil
}
