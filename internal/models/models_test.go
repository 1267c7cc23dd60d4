package models

import (
	"encoding/json"
	"testing"
	"time"
)

// ============================================================================
// Task Tests
// ============================================================================

func TestTask_ProjectName(t *testing.T) {
	tests := []struct {
		name     string
		task     Task
		expected string
	}{
		{
			name:     "no products",
			task:     Task{Name: "orphan"},
			expected: "",
		},
		{
			name:     "product without project",
			task:     Task{Products: []*Product{{Name: "router"}}},
			expected: "",
		},
		{
			name: "first product carries the project",
			task: Task{Products: []*Product{
				{Name: "router", Project: &Project{Name: "Fibre"}},
				{Name: "modem", Project: &Project{Name: "ADSL"}},
			}},
			expected: "Fibre",
		},
		{
			name:     "nil product entry",
			task:     Task{Products: []*Product{nil}},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.ProjectName(); got != tt.expected {
				t.Errorf("ProjectName() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestTask_StatusHelpers(t *testing.T) {
	completed := Task{Status: StatusCompleted}
	if !completed.IsCompleted() {
		t.Error("completed task should report IsCompleted")
	}
	if completed.IsActive() {
		t.Error("completed task should not report IsActive")
	}

	for _, status := range []string{StatusPending, StatusInProgress} {
		task := Task{Status: status}
		if !task.IsActive() {
			t.Errorf("task with status %q should report IsActive", status)
		}
		if task.IsCompleted() {
			t.Errorf("task with status %q should not report IsCompleted", status)
		}
	}
}

func TestValidStatus(t *testing.T) {
	for _, status := range TaskStatuses {
		if !ValidStatus(status) {
			t.Errorf("ValidStatus(%q) should be true", status)
		}
	}
	for _, status := range []string{"", "done", "PENDING", "in_progress"} {
		if ValidStatus(status) {
			t.Errorf("ValidStatus(%q) should be false", status)
		}
	}
}

func TestValidPriority(t *testing.T) {
	for _, p := range []string{"", PriorityLow, PriorityMedium, PriorityHigh} {
		if !ValidPriority(p) {
			t.Errorf("ValidPriority(%q) should be true", p)
		}
	}
	if ValidPriority("urgent") {
		t.Error("ValidPriority(\"urgent\") should be false")
	}
}

// ============================================================================
// InterventionSummary Tests
// ============================================================================

func TestInterventionSummary_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected InterventionSummary
		wantErr  bool
	}{
		{
			name:     "numeric fields",
			input:    `{"project":"Fibre","interventions":10,"pending":2,"approved":7,"refused":1}`,
			expected: InterventionSummary{Project: "Fibre", Interventions: 10, Pending: 2, Approved: 7, Refused: 1},
		},
		{
			name:     "string fields",
			input:    `{"project":"ADSL","interventions":"4","pending":"1","approved":"2","refused":"0"}`,
			expected: InterventionSummary{Project: "ADSL", Interventions: 4, Pending: 1, Approved: 2, Refused: 0},
		},
		{
			name:     "mixed and missing fields",
			input:    `{"project":"Mobile","interventions":"3","approved":3}`,
			expected: InterventionSummary{Project: "Mobile", Interventions: 3, Approved: 3},
		},
		{
			name:     "null counts read as zero",
			input:    `{"project":"TV","interventions":null}`,
			expected: InterventionSummary{Project: "TV"},
		},
		{
			name:    "non-numeric string rejected",
			input:   `{"project":"X","pending":"lots"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got InterventionSummary
			err := json.Unmarshal([]byte(tt.input), &got)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %+v, want %+v", got, tt.expected)
			}
		})
	}
}

// ============================================================================
// Notification / Session Tests
// ============================================================================

func TestNotification_IsRead(t *testing.T) {
	unread := Notification{ID: "n1"}
	if unread.IsRead() {
		t.Error("notification without read_at should be unread")
	}

	now := time.Now()
	read := Notification{ID: "n2", ReadAt: &now}
	if !read.IsRead() {
		t.Error("notification with read_at should be read")
	}
}

func TestSession_Expired(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	session := Session{Token: "tok", UserID: 1, ExpiresAt: now.Add(time.Hour)}

	if session.Expired(now) {
		t.Error("session should still be valid an hour before expiry")
	}
	if !session.Expired(now.Add(time.Hour)) {
		t.Error("session should be expired exactly at expiry")
	}
	if !session.Expired(now.Add(2 * time.Hour)) {
		t.Error("session should be expired past expiry")
	}
}
