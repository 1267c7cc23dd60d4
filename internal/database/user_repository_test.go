package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"suivi/internal/models"
)

func TestUserCreateAndLookup(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	user, err := repo.CreateUser(ctx, "admin", "admin@gmail.com", "hash", models.RoleAdmin)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if !user.IsAdmin() {
		t.Error("created admin should hold admin role")
	}

	byEmail, err := repo.GetUserByEmail(ctx, "admin@gmail.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if byEmail.ID != user.ID || byEmail.PasswordHash != "hash" {
		t.Errorf("lookup mismatch: %+v", byEmail)
	}

	if _, err := repo.GetUserByEmail(ctx, "nobody@gmail.com"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	// Duplicate email rejected by the unique constraint.
	if _, err := repo.CreateUser(ctx, "other", "admin@gmail.com", "hash", models.RoleUser); err == nil {
		t.Error("duplicate email should fail")
	}
}

func TestUserListWithTaskCounts(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	alice := createTestUser(t, repo, "Alice", "alice@example.com")
	bruno := createTestUser(t, repo, "Bruno", "bruno@example.com")

	for i := 0; i < 3; i++ {
		task := createTestTask(t, repo, "Ticket", alice.ID)
		if err := repo.AssignTask(ctx, task.ID, alice.ID, alice.ID); err != nil {
			t.Fatalf("AssignTask: %v", err)
		}
		if i == 0 {
			if err := repo.UpdateTaskStatus(ctx, task.ID, models.StatusCompleted, alice.ID); err != nil {
				t.Fatalf("UpdateTaskStatus: %v", err)
			}
		}
	}

	users, err := repo.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("len = %d, want 2", len(users))
	}
	// Name order: Alice then Bruno.
	if users[0].Name != "Alice" || users[0].AssignedTasks != 3 || users[0].CompletedTasks != 1 {
		t.Errorf("alice summary = %+v", users[0])
	}
	if users[1].ID != bruno.ID || users[1].AssignedTasks != 0 {
		t.Errorf("bruno summary = %+v", users[1])
	}
}

func TestUserRoleToggle(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	user := createTestUser(t, repo, "Alice", "alice@example.com")

	if err := repo.UpdateUserRole(ctx, user.ID, models.RoleAdmin); err != nil {
		t.Fatalf("UpdateUserRole: %v", err)
	}
	got, err := repo.GetUserByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUserByID: %v", err)
	}
	if !got.IsAdmin() {
		t.Error("role should now be admin")
	}
	if err := repo.UpdateUserRole(ctx, 999, models.RoleAdmin); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUserDeleteUnassignsTasks(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	admin := createTestUser(t, repo, "admin", "admin@example.com")
	alice := createTestUser(t, repo, "Alice", "alice@example.com")
	task := createTestTask(t, repo, "Ticket", admin.ID)
	if err := repo.AssignTask(ctx, task.ID, alice.ID, admin.ID); err != nil {
		t.Fatalf("AssignTask: %v", err)
	}

	if err := repo.DeleteUser(ctx, alice.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	got, err := repo.GetTaskByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("GetTaskByID: %v", err)
	}
	if got.AssignedUserID != 0 {
		t.Errorf("assignee = %d, want unassigned after user delete", got.AssignedUserID)
	}
}

func TestSessionLifecycle(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	user := createTestUser(t, repo, "Alice", "alice@example.com")
	expires := time.Now().Add(24 * time.Hour).UTC()

	if err := repo.CreateSession(ctx, "tok-1", user.ID, expires); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	session, err := repo.GetSession(ctx, "tok-1")
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if session.UserID != user.ID {
		t.Errorf("user = %d, want %d", session.UserID, user.ID)
	}
	if session.Expired(time.Now()) {
		t.Error("fresh session should not be expired")
	}

	if err := repo.DeleteSession(ctx, "tok-1"); err != nil {
		t.Fatalf("DeleteSession: %v", err)
	}
	if _, err := repo.GetSession(ctx, "tok-1"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSessionPurge(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	user := createTestUser(t, repo, "Alice", "alice@example.com")
	now := time.Now().UTC()

	if err := repo.CreateSession(ctx, "old", user.ID, now.Add(-time.Hour)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}
	if err := repo.CreateSession(ctx, "fresh", user.ID, now.Add(time.Hour)); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	if err := repo.PurgeSessions(ctx, now); err != nil {
		t.Fatalf("PurgeSessions: %v", err)
	}
	if _, err := repo.GetSession(ctx, "old"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("expired session survived purge: %v", err)
	}
	if _, err := repo.GetSession(ctx, "fresh"); err != nil {
		t.Errorf("fresh session purged: %v", err)
	}
}
