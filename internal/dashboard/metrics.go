package dashboard

import (
	"strconv"
	"strings"

	"suivi/internal/models"
)

// Metrics is the derived, output-only record recomputed from a filtered
// task collection. Percentages are unrounded float64 values in [0,100];
// rounding is a presentation concern. The zero value is the defined
// fallback for any computation over no data.
type Metrics struct {
	Efficiency   float64 `json:"efficiency"`
	Productivity float64 `json:"productivity"`
	Workload     float64 `json:"workload"`
	PriorityRate float64 `json:"priorityRate"`
	OnTimeRate   float64 `json:"onTimeRate"`

	TotalTasks       int `json:"totalTasks"`
	CompletedTasks   int `json:"completedTasks"`
	MyCompletedTasks int `json:"myCompletedTasks"`
	MyActiveTasks    int `json:"myActiveTasks"`
	PendingTasks     int `json:"pendingTasks"`
	InProgressTasks  int `json:"inProgressTasks"`
}

// ComputeMetrics derives the full metric record from an already-filtered
// task collection and the viewing user. It never fails: an empty
// collection yields the zero record, and every ratio with a zero
// denominator is 0.
//
// OnTimeRate only counts completed tasks that carry both a completion
// timestamp and a due date; a completed task missing either contributes
// to the denominator but never the numerator.
func ComputeMetrics(tasks []models.Task, currentUserID int) Metrics {
	var m Metrics
	m.TotalTasks = len(tasks)

	var highPriority, onTime int
	for i := range tasks {
		t := &tasks[i]
		mine := t.AssignedUserID == currentUserID

		switch t.Status {
		case models.StatusPending:
			m.PendingTasks++
		case models.StatusInProgress:
			m.InProgressTasks++
		case models.StatusCompleted:
			m.CompletedTasks++
			if mine {
				m.MyCompletedTasks++
			}
			if t.CompletedAt != nil && t.DueDate != nil && !t.CompletedAt.After(*t.DueDate) {
				onTime++
			}
		}
		if mine && t.IsActive() {
			m.MyActiveTasks++
		}
		if t.Priority == models.PriorityHigh {
			highPriority++
		}
	}

	if m.TotalTasks > 0 {
		total := float64(m.TotalTasks)
		m.Efficiency = float64(m.CompletedTasks) / total * 100
		m.Productivity = float64(m.MyCompletedTasks) / total * 100
		m.Workload = float64(m.MyActiveTasks) / total * 100
		m.PriorityRate = float64(highPriority) / total * 100
	}
	if m.CompletedTasks > 0 {
		m.OnTimeRate = float64(onTime) / float64(m.CompletedTasks) * 100
	}

	return m
}

// StatCard is one of the four summary cards at the top of the admin
// dashboard. Change is the pre-formatted "my share" line under the value.
type StatCard struct {
	Key        string `json:"key"`
	Title      string `json:"title"`
	Value      int    `json:"value"`
	Change     string `json:"change"`
	IsPositive bool   `json:"isPositive"`
}

// StatCards derives the four status cards (total, pending, in-progress,
// completed) with the viewing user's share of each as a one-decimal
// percentage string. A zero denominator renders as "0% mes tickets".
func StatCards(tasks []models.Task, currentUserID int) []StatCard {
	var pending, inProgress, completed int
	var myPending, myInProgress, myCompleted int

	for i := range tasks {
		t := &tasks[i]
		mine := t.AssignedUserID == currentUserID
		switch t.Status {
		case models.StatusPending:
			pending++
			if mine {
				myPending++
			}
		case models.StatusInProgress:
			inProgress++
			if mine {
				myInProgress++
			}
		case models.StatusCompleted:
			completed++
			if mine {
				myCompleted++
			}
		}
	}

	total := len(tasks)
	myTotal := myPending + myInProgress + myCompleted

	return []StatCard{
		{Key: "total", Title: "Total Tickets", Value: total, Change: shareLine(myTotal, total), IsPositive: true},
		{Key: "pending", Title: "Tickets en Attente", Value: pending, Change: shareLine(myPending, pending), IsPositive: true},
		{Key: "inProgress", Title: "En Cours", Value: inProgress, Change: shareLine(myInProgress, inProgress), IsPositive: true},
		{Key: "completed", Title: "Tickets Terminés", Value: completed, Change: shareLine(myCompleted, completed), IsPositive: true},
	}
}

// shareLine formats "my tickets" as a share of a card's total.
func shareLine(mine, total int) string {
	if total <= 0 {
		return "0% mes tickets"
	}
	pct := float64(mine) / float64(total) * 100
	return strconv.FormatFloat(pct, 'f', 1, 64) + "% mes tickets"
}

// StatusCount pairs a display label with a task count, feeding the
// per-project status chart.
type StatusCount struct {
	Status string `json:"status"`
	Value  int    `json:"value"`
}

// GroupedStatusData breaks the filtered tasks of one concrete project
// down by status for the chart view. It returns nil when no concrete
// project is selected; the chart then shows the per-project totals
// instead.
func GroupedStatusData(filtered []models.Task, f FilterState) []StatusCount {
	if f.Project == FilterAll || f.Project == "" {
		return nil
	}

	term := strings.ToLower(f.Search)
	var pending, inProgress, completed int
	for i := range filtered {
		t := &filtered[i]
		if t.ProjectName() != f.Project {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(t.Name), term) &&
			!strings.Contains(strings.ToLower(t.Description), term) {
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

	return []StatusCount{
		{Status: "En Attente", Value: pending},
		{Status: "En Cours", Value: inProgress},
		{Status: "Terminées", Value: completed},
	}
}
