package intervention

import (
	"context"
	"errors"
	"testing"

	"suivi/internal/database"
	"suivi/internal/models"
	"suivi/internal/testutil"
)

func setupService(t *testing.T) (Service, *database.Repository, int, int) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	repo := database.NewRepository(db)
	adminID := testutil.CreateTestUser(t, db, "admin", "admin@example.com", models.RoleAdmin)
	taskID := testutil.CreateTestTask(t, db, "Ticket", adminID)
	return NewService(repo, nil), repo, adminID, taskID
}

func TestLogInterventionValidation(t *testing.T) {
	svc, _, adminID, taskID := setupService(t)
	ctx := context.Background()

	if _, err := svc.LogIntervention(ctx, 0, adminID, "x"); !errors.Is(err, ErrInvalidTaskID) {
		t.Errorf("err = %v, want ErrInvalidTaskID", err)
	}
	if _, err := svc.LogIntervention(ctx, taskID, adminID, ""); !errors.Is(err, ErrEmptyDescription) {
		t.Errorf("err = %v, want ErrEmptyDescription", err)
	}
	if _, err := svc.LogIntervention(ctx, 999, adminID, "x"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound for missing task", err)
	}

	intervention, err := svc.LogIntervention(ctx, taskID, adminID, "site visit")
	if err != nil {
		t.Fatalf("LogIntervention: %v", err)
	}
	if intervention.Status != models.InterventionPending {
		t.Errorf("status = %q, want pending", intervention.Status)
	}
}

func TestReviewNotifiesAuthor(t *testing.T) {
	svc, repo, adminID, taskID := setupService(t)
	ctx := context.Background()
	author, err := repo.CreateUser(ctx, "Alice", "alice@example.com", "x", models.RoleUser)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	intervention, err := svc.LogIntervention(ctx, taskID, author.ID, "repair")
	if err != nil {
		t.Fatalf("LogIntervention: %v", err)
	}

	if err := svc.Review(ctx, intervention.ID, models.InterventionApproved, adminID); err != nil {
		t.Fatalf("Review: %v", err)
	}
	got, err := svc.GetIntervention(ctx, intervention.ID)
	if err != nil {
		t.Fatalf("GetIntervention: %v", err)
	}
	if got.Status != models.InterventionApproved {
		t.Errorf("status = %q, want approved", got.Status)
	}

	notifications, err := repo.ListNotificationsByUser(ctx, author.ID)
	if err != nil {
		t.Fatalf("ListNotificationsByUser: %v", err)
	}
	if len(notifications) != 1 || notifications[0].Category != models.CategoryIntervention {
		t.Errorf("notifications = %+v, want one intervention notice", notifications)
	}
}

func TestReviewRejectsPendingStatus(t *testing.T) {
	svc, _, adminID, taskID := setupService(t)
	ctx := context.Background()
	intervention, err := svc.LogIntervention(ctx, taskID, adminID, "repair")
	if err != nil {
		t.Fatalf("LogIntervention: %v", err)
	}

	if err := svc.Review(ctx, intervention.ID, models.InterventionPending, adminID); !errors.Is(err, ErrInvalidReviewStatus) {
		t.Errorf("err = %v, want ErrInvalidReviewStatus", err)
	}
	if err := svc.Review(ctx, intervention.ID, "cancelled", adminID); !errors.Is(err, ErrInvalidReviewStatus) {
		t.Errorf("err = %v, want ErrInvalidReviewStatus", err)
	}
}

func TestSummarizeByProject(t *testing.T) {
	svc, _, adminID, taskID := setupService(t)
	ctx := context.Background()
	if _, err := svc.LogIntervention(ctx, taskID, adminID, "one"); err != nil {
		t.Fatalf("LogIntervention: %v", err)
	}
	if _, err := svc.LogIntervention(ctx, taskID, adminID, "two"); err != nil {
		t.Fatalf("LogIntervention: %v", err)
	}

	summaries, err := svc.SummarizeByProject(ctx)
	if err != nil {
		t.Fatalf("SummarizeByProject: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Interventions != 2 || summaries[0].Pending != 2 {
		t.Errorf("summaries = %+v, want one group of two pending", summaries)
	}
}
