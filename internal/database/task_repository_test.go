package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"suivi/internal/models"
)

func TestTaskCreateAndGet(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	admin := createTestUser(t, repo, "admin", "admin@example.com")
	productID := createTestProduct(t, repo, "Fibre", "FTTH")

	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	task, err := repo.CreateTask(ctx, CreateTaskParams{
		Name:           "Install line",
		Description:    "Customer install",
		Status:         models.StatusPending,
		Priority:       models.PriorityHigh,
		DueDate:        &due,
		AssignedUserID: admin.ID,
		CreatedBy:      admin.ID,
		ProductIDs:     []int{productID},
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	got, err := repo.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID: %v", err)
	}
	if got.Name != "Install line" || got.Priority != models.PriorityHigh {
		t.Errorf("unexpected task %+v", got)
	}
	if got.DueDate == nil || !got.DueDate.Equal(due) {
		t.Errorf("due date = %v, want %v", got.DueDate, due)
	}
	if got.ProjectName() != "Fibre" {
		t.Errorf("project = %q, want Fibre", got.ProjectName())
	}
	if got.CompletedAt != nil {
		t.Error("new task should have no completion timestamp")
	}
}

func TestTaskGetMissing(t *testing.T) {
	repo := setupTestRepo(t)
	if _, err := repo.GetTaskByID(context.Background(), 999); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestTaskUnassignedIsZero(t *testing.T) {
	repo := setupTestRepo(t)
	admin := createTestUser(t, repo, "admin", "admin@example.com")

	task := createTestTask(t, repo, "Orphan", admin.ID)
	if task.AssignedUserID != 0 {
		t.Errorf("assignee = %d, want 0", task.AssignedUserID)
	}
}

func TestTaskStatusTransitions(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	admin := createTestUser(t, repo, "admin", "admin@example.com")
	task := createTestTask(t, repo, "Ticket", admin.ID)

	if err := repo.UpdateTaskStatus(ctx, task.ID, models.StatusCompleted, admin.ID); err != nil {
		t.Fatalf("UpdateTaskStatus: %v", err)
	}
	got, err := repo.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID: %v", err)
	}
	if got.Status != models.StatusCompleted {
		t.Errorf("status = %q, want completed", got.Status)
	}
	if got.CompletedAt == nil {
		t.Error("completing a task should stamp completed_at")
	}

	// Reopening clears the stamp.
	if err := repo.UpdateTaskStatus(ctx, task.ID, models.StatusInProgress, admin.ID); err != nil {
		t.Fatalf("UpdateTaskStatus: %v", err)
	}
	got, err = repo.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID: %v", err)
	}
	if got.CompletedAt != nil {
		t.Error("reopening a task should clear completed_at")
	}

	if err := repo.UpdateTaskStatus(ctx, 999, models.StatusCompleted, admin.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("missing task err = %v, want ErrNotFound", err)
	}
}

func TestTaskFirstProductOrdering(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	admin := createTestUser(t, repo, "admin", "admin@example.com")
	fibre := createTestProduct(t, repo, "Fibre", "FTTH")
	mobile := createTestProduct(t, repo, "Mobile", "5G")

	task := createTestTask(t, repo, "Dual", admin.ID, mobile, fibre)
	if task.ProjectName() != "Mobile" {
		t.Errorf("project = %q, want first-linked Mobile", task.ProjectName())
	}

	// Relinking in the other order flips the task's project.
	if err := repo.SetTaskProducts(ctx, task.ID, []int{fibre, mobile}); err != nil {
		t.Fatalf("SetTaskProducts: %v", err)
	}
	got, err := repo.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID: %v", err)
	}
	if got.ProjectName() != "Fibre" {
		t.Errorf("project = %q, want Fibre after relink", got.ProjectName())
	}
	if len(got.Products) != 2 {
		t.Errorf("products = %d, want 2", len(got.Products))
	}
}

func TestTaskListSince(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	admin := createTestUser(t, repo, "admin", "admin@example.com")
	createTestTask(t, repo, "One", admin.ID)
	createTestTask(t, repo, "Two", admin.ID)

	all, err := repo.ListTasksSince(ctx, time.Time{})
	if err != nil {
		t.Fatalf("ListTasksSince: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("len = %d, want 2", len(all))
	}

	none, err := repo.ListTasksSince(ctx, time.Now().AddDate(1, 0, 0))
	if err != nil {
		t.Fatalf("ListTasksSince: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("future cutoff returned %d tasks", len(none))
	}
}

func TestTaskListByAssigneeAndObserved(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	admin := createTestUser(t, repo, "admin", "admin@example.com")
	alice := createTestUser(t, repo, "alice", "alice@example.com")

	mine := createTestTask(t, repo, "Mine", admin.ID)
	if err := repo.AssignTask(ctx, mine.ID, admin.ID, admin.ID); err != nil {
		t.Fatalf("AssignTask: %v", err)
	}
	delegated := createTestTask(t, repo, "Delegated", admin.ID)
	if err := repo.AssignTask(ctx, delegated.ID, alice.ID, admin.ID); err != nil {
		t.Fatalf("AssignTask: %v", err)
	}
	createTestTask(t, repo, "Unassigned", admin.ID)

	assigned, err := repo.ListTasksByAssignee(ctx, admin.ID)
	if err != nil {
		t.Fatalf("ListTasksByAssignee: %v", err)
	}
	if len(assigned) != 1 || assigned[0].Name != "Mine" {
		t.Errorf("assigned = %+v, want only Mine", assigned)
	}

	observed, err := repo.ListObservedTasks(ctx, admin.ID)
	if err != nil {
		t.Fatalf("ListObservedTasks: %v", err)
	}
	if len(observed) != 2 {
		t.Errorf("observed = %d tasks, want delegated and unassigned", len(observed))
	}
}

func TestTaskListPage(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	admin := createTestUser(t, repo, "admin", "admin@example.com")
	for i := 0; i < 5; i++ {
		createTestTask(t, repo, "Ticket", admin.ID)
	}

	page, err := repo.ListTaskPage(ctx, 2, 2)
	if err != nil {
		t.Fatalf("ListTaskPage: %v", err)
	}
	if len(page.Data) != 2 {
		t.Errorf("page size = %d, want 2", len(page.Data))
	}
	want := models.PageMeta{Page: 2, PerPage: 2, Total: 5, TotalPages: 3}
	if page.Meta != want {
		t.Errorf("meta = %+v, want %+v", page.Meta, want)
	}
}

func TestTaskDeleteCascades(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	admin := createTestUser(t, repo, "admin", "admin@example.com")
	productID := createTestProduct(t, repo, "Fibre", "FTTH")
	task := createTestTask(t, repo, "Doomed", admin.ID, productID)

	if _, err := repo.CreateIntervention(ctx, task.ID, admin.ID, "check"); err != nil {
		t.Fatalf("CreateIntervention: %v", err)
	}
	if err := repo.DeleteTask(ctx, task.ID); err != nil {
		t.Fatalf("DeleteTask: %v", err)
	}

	if _, err := repo.GetTaskByID(ctx, task.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("task still present after delete: %v", err)
	}
	interventions, err := repo.ListInterventionsByTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("ListInterventionsByTask: %v", err)
	}
	if len(interventions) != 0 {
		t.Errorf("interventions survived task delete: %d", len(interventions))
	}
}
