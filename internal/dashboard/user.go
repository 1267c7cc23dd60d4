package dashboard

import (
	"math"
	"strings"
	"time"

	"suivi/internal/models"
)

// The user dashboard reuses the same pipeline with a narrower filter: the
// search only covers the task name, and there is no project dimension.

// FilterActiveTasks narrows a user's active task list by name search and
// status. An empty search or a status of "all" leaves that dimension
// open. The result is never nil.
func FilterActiveTasks(tasks []models.Task, search, status string) []models.Task {
	term := strings.ToLower(search)

	kept := make([]models.Task, 0, len(tasks))
	for i := range tasks {
		t := &tasks[i]
		if term != "" && !strings.Contains(strings.ToLower(t.Name), term) {
			continue
		}
		if status != FilterAll && status != "" && t.Status != status {
			continue
		}
		kept = append(kept, tasks[i])
	}
	return kept
}

// MyStatusCounts tallies the user's tasks per status for the quick-stat
// cards and the distribution chart.
func MyStatusCounts(tasks []models.Task, userID int) (pending, inProgress, completed int) {
	for i := range tasks {
		t := &tasks[i]
		if t.AssignedUserID != userID {
			continue
		}
		switch t.Status {
		case models.StatusPending:
			pending++
		case models.StatusInProgress:
			inProgress++
		case models.StatusCompleted:
			completed++
		}
	}
	return pending, inProgress, completed
}

// DistributionData shapes the three status counts for the pie chart.
func DistributionData(pending, inProgress, completed int) []StatusCount {
	return []StatusCount{
		{Status: "En Attente", Value: pending},
		{Status: "En Cours", Value: inProgress},
		{Status: "Terminées", Value: completed},
	}
}

// DaysUntilDue returns the number of days remaining before the due date,
// rounded up. A due date earlier than now yields a negative count.
func DaysUntilDue(due, now time.Time) int {
	return int(math.Ceil(due.Sub(now).Hours() / 24))
}
