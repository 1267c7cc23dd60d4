package dashboard

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	core "suivi/internal/dashboard"
	"suivi/internal/database"
	"suivi/internal/models"
	"suivi/internal/testutil"
)

func setupService(t *testing.T) (*service, *database.Repository, int) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	adminID := testutil.CreateTestUser(t, db, "admin", "admin@example.com", models.RoleAdmin)
	return NewService(repo).(*service), repo, adminID
}

func seedTask(t *testing.T, repo *database.Repository, name, status string, assignee, createdBy int) *models.Task {
	t.Helper()
	task, err := repo.CreateTask(context.Background(), database.CreateTaskParams{
		Name:           name,
		Status:         models.StatusPending,
		AssignedUserID: assignee,
		CreatedBy:      createdBy,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if status != models.StatusPending {
		if err := repo.UpdateTaskStatus(context.Background(), task.ID, status, createdBy); err != nil {
			t.Fatalf("UpdateTaskStatus: %v", err)
		}
	}
	return task
}

func TestOverviewComputesWidgets(t *testing.T) {
	svc, repo, adminID := setupService(t)
	ctx := context.Background()

	seedTask(t, repo, "Install", models.StatusCompleted, adminID, adminID)
	seedTask(t, repo, "Survey", models.StatusPending, adminID, adminID)
	seedTask(t, repo, "Audit", models.StatusInProgress, 0, adminID)

	overview, err := svc.Overview(ctx, core.DefaultFilters(), core.FilterAll, adminID)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}

	if overview.Metrics.TotalTasks != 3 || overview.Metrics.CompletedTasks != 1 {
		t.Errorf("metrics = %+v", overview.Metrics)
	}
	if len(overview.StatCards) == 0 {
		t.Error("stat cards missing")
	}
	// The default window is today, which admits freshly created tasks.
	if len(overview.Tasks) != 3 {
		t.Errorf("table tasks = %d, want 3", len(overview.Tasks))
	}
	// The grouped chart only appears once a concrete project is selected.
	if overview.GroupedData != nil {
		t.Errorf("grouped data = %+v, want nil for project=all", overview.GroupedData)
	}
}

func TestOverviewAppliesFilters(t *testing.T) {
	svc, repo, adminID := setupService(t)
	ctx := context.Background()

	seedTask(t, repo, "Install fibre", models.StatusPending, adminID, adminID)
	seedTask(t, repo, "Renew mobile", models.StatusCompleted, adminID, adminID)

	f := core.DefaultFilters()
	f.Search = "fibre"
	overview, err := svc.Overview(ctx, f, core.FilterAll, adminID)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if len(overview.Tasks) != 1 || overview.Tasks[0].Name != "Install fibre" {
		t.Errorf("filtered tasks = %+v", overview.Tasks)
	}
	// Metrics and stat cards follow the filters: the completed mobile
	// task is out of view, so nothing counts as completed.
	if overview.Metrics.TotalTasks != 1 {
		t.Errorf("metrics total = %d, want 1", overview.Metrics.TotalTasks)
	}
	if overview.Metrics.Efficiency != 0 {
		t.Errorf("efficiency = %v, want 0 with no completed task in view", overview.Metrics.Efficiency)
	}
	if len(overview.StatCards) > 0 && overview.StatCards[0].Value != 1 {
		t.Errorf("total card = %+v, want value 1", overview.StatCards[0])
	}
}

func TestOverviewFiltersInterventionPanel(t *testing.T) {
	svc, repo, adminID := setupService(t)
	ctx := context.Background()

	project, err := repo.CreateProject(ctx, "Fibre", "")
	if err != nil {
		t.Fatalf("CreateProject: %v", err)
	}
	product, err := repo.CreateProduct(ctx, project.ID, "FTTH")
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	task := seedTask(t, repo, "Install", models.StatusPending, adminID, adminID)
	if err := repo.SetTaskProducts(ctx, task.ID, []int{product.ID}); err != nil {
		t.Fatalf("SetTaskProducts: %v", err)
	}
	if _, err := repo.CreateIntervention(ctx, task.ID, adminID, "Soudure"); err != nil {
		t.Fatalf("CreateIntervention: %v", err)
	}

	// The only intervention is pending, so the approved filter empties
	// the panel while the pending filter keeps it.
	overview, err := svc.Overview(ctx, core.DefaultFilters(), core.InterventionFilterApproved, adminID)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if len(overview.Interventions) != 0 {
		t.Errorf("interventions = %+v, want none for approved filter", overview.Interventions)
	}

	overview, err = svc.Overview(ctx, core.DefaultFilters(), core.InterventionFilterPending, adminID)
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	if len(overview.Interventions) != 1 || overview.Interventions[0].Project != "Fibre" {
		t.Errorf("interventions = %+v, want the Fibre summary", overview.Interventions)
	}
}

func TestUserOverview(t *testing.T) {
	svc, repo, adminID := setupService(t)
	ctx := context.Background()
	alice, err := repo.CreateUser(ctx, "Alice", "alice@example.com", "x", models.RoleUser)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	seedTask(t, repo, "Mine pending", models.StatusPending, alice.ID, adminID)
	seedTask(t, repo, "Mine done", models.StatusCompleted, alice.ID, adminID)
	seedTask(t, repo, "Watched", models.StatusPending, adminID, alice.ID)

	overview, err := svc.UserOverview(ctx, alice.ID, "", models.StatusPending)
	if err != nil {
		t.Fatalf("UserOverview: %v", err)
	}
	if overview.Pending != 1 || overview.Completed != 1 || overview.InProgress != 0 {
		t.Errorf("counts = %+v", overview)
	}
	if len(overview.MyTasks) != 1 || overview.MyTasks[0].Name != "Mine pending" {
		t.Errorf("my tasks = %+v", overview.MyTasks)
	}
	if len(overview.ObservedTasks) != 1 || overview.ObservedTasks[0].Name != "Watched" {
		t.Errorf("observed = %+v", overview.ObservedTasks)
	}
	if len(overview.Distribution) != 3 {
		t.Errorf("distribution = %+v", overview.Distribution)
	}

	if _, err := svc.UserOverview(ctx, 0, "", core.FilterAll); err != ErrInvalidUserID {
		t.Errorf("err = %v, want ErrInvalidUserID", err)
	}
}

func TestUserOverviewIncludesRecentNotifications(t *testing.T) {
	svc, repo, adminID := setupService(t)
	ctx := context.Background()

	for _, msg := range []string{"une", "deux", "trois", "quatre"} {
		if _, err := repo.CreateNotification(ctx, adminID, msg, models.CategorySystem); err != nil {
			t.Fatalf("CreateNotification: %v", err)
		}
	}

	overview, err := svc.UserOverview(ctx, adminID, "", core.FilterAll)
	if err != nil {
		t.Fatalf("UserOverview: %v", err)
	}
	if len(overview.RecentNotifications) != recentNotificationLimit {
		t.Errorf("recent notifications = %d, want %d", len(overview.RecentNotifications), recentNotificationLimit)
	}
	for _, n := range overview.RecentNotifications {
		if n.UserID != adminID {
			t.Errorf("notification for user %d leaked into the payload", n.UserID)
		}
	}
}

func TestExportIgnoresTableWindow(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	adminID := testutil.CreateTestUser(t, db, "admin", "admin@example.com", models.RoleAdmin)
	svc := NewService(repo).(*service)
	ctx := context.Background()

	task := seedTask(t, repo, "Vieux chantier", models.StatusPending, adminID, adminID)
	if _, err := db.ExecContext(ctx,
		"UPDATE tasks SET created_at = datetime('now', '-10 days') WHERE id = ?", task.ID); err != nil {
		t.Fatalf("backdate task: %v", err)
	}

	// Default filters keep the table on the today window; the export
	// still covers the whole collection.
	result, err := svc.Export(ctx, core.DefaultFilters(), "csv")
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if !strings.Contains(string(result.Data), "Vieux chantier") {
		t.Errorf("backdated task missing from export: %q", string(result.Data))
	}
}

func TestExportFormats(t *testing.T) {
	svc, repo, adminID := setupService(t)
	ctx := context.Background()
	seedTask(t, repo, "Install", models.StatusPending, adminID, adminID)

	f := core.DefaultFilters()
	f.TableTime = core.WindowAll

	jsonResult, err := svc.Export(ctx, f, "json")
	if err != nil {
		t.Fatalf("Export json: %v", err)
	}
	var payload struct {
		Stats core.ExportStats `json:"stats"`
		Tasks []models.Task    `json:"tasks"`
	}
	if err := json.Unmarshal(jsonResult.Data, &payload); err != nil {
		t.Fatalf("export is not valid JSON: %v", err)
	}
	if payload.Stats.TotalTasks != 1 || len(payload.Tasks) != 1 {
		t.Errorf("payload = %+v", payload)
	}
	if jsonResult.MIME != "application/json" {
		t.Errorf("mime = %q", jsonResult.MIME)
	}
	if !strings.HasSuffix(jsonResult.Filename, ".json") {
		t.Errorf("filename = %q", jsonResult.Filename)
	}

	csvResult, err := svc.Export(ctx, f, "csv")
	if err != nil {
		t.Fatalf("Export csv: %v", err)
	}
	if !strings.HasPrefix(string(csvResult.Data), "Task Title,Project,Status,Priority,Created Date") {
		t.Errorf("csv header wrong: %q", string(csvResult.Data))
	}

	if _, err := svc.Export(ctx, f, "xml"); err == nil {
		t.Error("unknown format should fail")
	}
}

func TestSinceForRange(t *testing.T) {
	now := time.Date(2026, 8, 15, 14, 30, 0, 0, time.UTC)

	if got := sinceForRange("all", now); !got.IsZero() {
		t.Errorf("all = %v, want zero", got)
	}
	if got := sinceForRange("gibberish", now); !got.IsZero() {
		t.Errorf("unknown token = %v, want zero", got)
	}
	if got := sinceForRange("today", now); !got.Equal(time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("today = %v", got)
	}
	if got := sinceForRange("this-week", now); !got.Equal(now.AddDate(0, 0, -7)) {
		t.Errorf("this-week = %v", got)
	}
	if got := sinceForRange("this-month", now); !got.Equal(now.AddDate(0, -1, 0)) {
		t.Errorf("this-month = %v", got)
	}
}
