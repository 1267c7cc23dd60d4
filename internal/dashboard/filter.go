package dashboard

import (
	"strings"
	"time"

	"suivi/internal/models"
)

// FilterAll is the sentinel value meaning "no filtering on this dimension".
const FilterAll = "all"

// Table time-window modes.
const (
	WindowAll   = "all"
	WindowToday = "today"
)

// FilterState is the transient, UI-scoped filter selection. It is plain
// data with no behavior of its own beyond Matches; serialize it, echo it
// back from the server, pass it into each recomputation.
//
// TimeRange is an opaque token (e.g. "this-week") forwarded to the task
// source; it is never interpreted here.
type FilterState struct {
	Search    string `json:"searchTerm"`
	Status    string `json:"statusFilter"`
	Project   string `json:"projectFilter"`
	TimeRange string `json:"timeRange"`
	TableTime string `json:"tableTimeFilter"`
}

// DefaultFilters returns the initial filter selection: everything open,
// table narrowed to the last day.
func DefaultFilters() FilterState {
	return FilterState{
		Status:    FilterAll,
		Project:   FilterAll,
		TimeRange: FilterAll,
		TableTime: WindowToday,
	}
}

// Normalize fills empty dimensions with their "all" sentinel so a
// partially-populated state (e.g. decoded from a query string) behaves
// like the default on the missing dimensions.
func (f FilterState) Normalize() FilterState {
	if f.Status == "" {
		f.Status = FilterAll
	}
	if f.Project == "" {
		f.Project = FilterAll
	}
	if f.TimeRange == "" {
		f.TimeRange = FilterAll
	}
	if f.TableTime == "" {
		f.TableTime = WindowAll
	}
	return f
}

// Matches reports whether the task passes all three local filter
// dimensions: search, status and project. The time dimensions are not
// consulted here; TimeRange belongs to the server and TableTime to
// FilterByWindow.
func (f FilterState) Matches(task *models.Task) bool {
	return f.matchesSearch(task) && f.matchesStatus(task) && f.matchesProject(task)
}

// matchesSearch checks the case-insensitive substring search over the
// task name, its project name, and its description. A field the task
// lacks simply cannot match; it is not an error.
func (f FilterState) matchesSearch(task *models.Task) bool {
	if f.Search == "" {
		return true
	}
	term := strings.ToLower(f.Search)
	if strings.Contains(strings.ToLower(task.Name), term) {
		return true
	}
	if project := task.ProjectName(); project != "" && strings.Contains(strings.ToLower(project), term) {
		return true
	}
	return strings.Contains(strings.ToLower(task.Description), term)
}

func (f FilterState) matchesStatus(task *models.Task) bool {
	return f.Status == FilterAll || f.Status == "" || f.Status == task.Status
}

// matchesProject requires an exact project name match for a concrete
// filter. A task with no products, or whose first product has no project,
// never matches a concrete project filter.
func (f FilterState) matchesProject(task *models.Task) bool {
	if f.Project == FilterAll || f.Project == "" {
		return true
	}
	return task.ProjectName() == f.Project
}

// Apply returns the tasks passing Matches, in input order. With a default
// filter state the result equals the input collection. The result is
// never nil.
func (f FilterState) Apply(tasks []models.Task) []models.Task {
	filtered := make([]models.Task, 0, len(tasks))
	for i := range tasks {
		if f.Matches(&tasks[i]) {
			filtered = append(filtered, tasks[i])
		}
	}
	return filtered
}

// FilterByWindow narrows tasks to the table's time window. WindowToday
// keeps tasks created at or after local midnight of the day before now,
// which admits up to about 48h of tasks near day boundaries rather than
// a strict last-24-hours cut. Any other mode is the identity.
//
// A task with no creation timestamp never matches WindowToday.
func FilterByWindow(tasks []models.Task, mode string, now time.Time) []models.Task {
	if mode != WindowToday {
		return tasks
	}

	year, month, day := now.Date()
	cutoff := time.Date(year, month, day, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -1)

	kept := make([]models.Task, 0, len(tasks))
	for i := range tasks {
		created := tasks[i].CreatedAt
		if created.IsZero() {
			continue
		}
		if !created.Before(cutoff) {
			kept = append(kept, tasks[i])
		}
	}
	return kept
}
