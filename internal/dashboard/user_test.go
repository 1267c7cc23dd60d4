package dashboard

import (
	"testing"
	"time"

	"suivi/internal/models"
)

func TestFilterActiveTasks(t *testing.T) {
	tasks := []models.Task{
		{Name: "Fix router", Status: models.StatusPending},
		{Name: "Swap modem", Status: models.StatusInProgress},
		{Name: "Check router firmware", Status: models.StatusCompleted},
	}

	if got := FilterActiveTasks(tasks, "", FilterAll); len(got) != 3 {
		t.Errorf("no filters kept %d, want 3", len(got))
	}

	got := FilterActiveTasks(tasks, "router", FilterAll)
	if len(got) != 2 {
		t.Errorf("search 'router' kept %d, want 2", len(got))
	}

	got = FilterActiveTasks(tasks, "", models.StatusInProgress)
	if len(got) != 1 || got[0].Name != "Swap modem" {
		t.Errorf("status filter kept %v", got)
	}

	// The user-dashboard search covers the name only, not the description.
	described := []models.Task{{Name: "a", Description: "router inside", Status: models.StatusPending}}
	if got := FilterActiveTasks(described, "router", FilterAll); len(got) != 0 {
		t.Errorf("description must not match on the user dashboard, kept %v", got)
	}

	if got := FilterActiveTasks(nil, "", FilterAll); got == nil {
		t.Error("result must be an empty slice, not nil")
	}
}

func TestMyStatusCounts(t *testing.T) {
	tasks := []models.Task{
		{Status: models.StatusPending, AssignedUserID: 7},
		{Status: models.StatusPending, AssignedUserID: 8},
		{Status: models.StatusInProgress, AssignedUserID: 7},
		{Status: models.StatusCompleted, AssignedUserID: 7},
		{Status: models.StatusCompleted, AssignedUserID: 7},
	}

	pending, inProgress, completed := MyStatusCounts(tasks, 7)
	if pending != 1 || inProgress != 1 || completed != 2 {
		t.Errorf("MyStatusCounts = (%d,%d,%d), want (1,1,2)", pending, inProgress, completed)
	}
}

func TestDistributionData(t *testing.T) {
	data := DistributionData(1, 2, 3)
	if len(data) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(data))
	}
	if data[0].Value != 1 || data[1].Value != 2 || data[2].Value != 3 {
		t.Errorf("segment values wrong: %v", data)
	}
}

func TestDaysUntilDue(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		due  time.Time
		want int
	}{
		{"due in exactly 3 days", now.AddDate(0, 0, 3), 3},
		{"due in 2.5 days rounds up", now.Add(60 * time.Hour), 3},
		{"due now", now, 0},
		{"overdue", now.Add(-36 * time.Hour), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntilDue(tt.due, now); got != tt.want {
				t.Errorf("DaysUntilDue = %d, want %d", got, tt.want)
			}
		})
	}
}
