// Package dashboard implements the data pipeline behind both dashboards:
// filtering, derived metrics, intervention projection, time windowing and
// export serialization.
//
// Everything here is a pure function over immutable snapshots: callers
// hand in a task slice and the current filter state, and get a fresh
// result back. Nothing blocks, performs I/O, or keeps state between
// calls, so each recomputation pass is just calling the functions again.
//
// Input validation happens once at the edge (DecodeTasks and the JSON
// coercion on InterventionSummary); past that boundary every function is
// total and falls back to its zero-value shape instead of failing.
package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"suivi/internal/models"
)

// DecodeTasks is the validation boundary for task collections arriving
// from a remote source. It accepts either a bare JSON array of tasks or a
// paginated envelope with a "data" field holding that array.
//
// The returned slice is never nil. On malformed input it is empty and the
// error says why; callers log the warning and carry on with the empty
// collection rather than propagating the failure.
func DecodeTasks(data []byte) ([]models.Task, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return []models.Task{}, fmt.Errorf("empty task payload")
	}

	if trimmed[0] == '[' {
		var tasks []models.Task
		if err := json.Unmarshal(trimmed, &tasks); err != nil {
			return []models.Task{}, fmt.Errorf("decode task array: %w", err)
		}
		if tasks == nil {
			tasks = []models.Task{}
		}
		return tasks, nil
	}

	var page models.TaskPage
	if err := json.Unmarshal(trimmed, &page); err != nil {
		return []models.Task{}, fmt.Errorf("decode task envelope: %w", err)
	}
	if page.Data == nil {
		return []models.Task{}, fmt.Errorf("task envelope has no data field")
	}
	return page.Data, nil
}

// Projects returns the unique set of project names referenced by the
// tasks, ascending. Tasks without a project linkage contribute nothing.
func Projects(tasks []models.Task) []string {
	seen := make(map[string]bool)
	var names []string
	for i := range tasks {
		name := tasks[i].ProjectName()
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}
