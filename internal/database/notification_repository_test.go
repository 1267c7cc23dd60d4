package database

import (
	"context"
	"errors"
	"testing"

	"suivi/internal/models"
)

func TestNotificationLifecycle(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	user := createTestUser(t, repo, "Alice", "alice@example.com")

	first, err := repo.CreateNotification(ctx, user.ID, "Ticket assigned", models.CategoryTask)
	if err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}
	if first.ID == "" {
		t.Fatal("notification should get a UUID")
	}
	if first.IsRead() {
		t.Error("new notification should be unread")
	}
	if _, err := repo.CreateNotification(ctx, user.ID, "Intervention approved", models.CategoryIntervention); err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}

	unread, err := repo.CountUnreadNotifications(ctx, user.ID)
	if err != nil {
		t.Fatalf("CountUnreadNotifications: %v", err)
	}
	if unread != 2 {
		t.Errorf("unread = %d, want 2", unread)
	}

	if err := repo.MarkNotificationRead(ctx, first.ID); err != nil {
		t.Fatalf("MarkNotificationRead: %v", err)
	}
	got, err := repo.NotificationRepo.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.IsRead() {
		t.Error("notification should be read after marking")
	}

	// Marking again is a no-op, marking a missing one is not found.
	if err := repo.MarkNotificationRead(ctx, first.ID); err != nil {
		t.Errorf("re-marking read: %v", err)
	}
	if err := repo.MarkNotificationRead(ctx, "missing"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	if err := repo.MarkAllNotificationsRead(ctx, user.ID); err != nil {
		t.Fatalf("MarkAllNotificationsRead: %v", err)
	}
	unread, err = repo.CountUnreadNotifications(ctx, user.ID)
	if err != nil {
		t.Fatalf("CountUnreadNotifications: %v", err)
	}
	if unread != 0 {
		t.Errorf("unread = %d, want 0 after mark all", unread)
	}

	if err := repo.ClearNotifications(ctx, user.ID); err != nil {
		t.Fatalf("ClearNotifications: %v", err)
	}
	list, err := repo.ListNotificationsByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListNotificationsByUser: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("len = %d, want 0 after clear", len(list))
	}
}

func TestNotificationsScopedToUser(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	alice := createTestUser(t, repo, "Alice", "alice@example.com")
	bruno := createTestUser(t, repo, "Bruno", "bruno@example.com")

	if _, err := repo.CreateNotification(ctx, alice.ID, "For Alice", ""); err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}
	if _, err := repo.CreateNotification(ctx, bruno.ID, "For Bruno", ""); err != nil {
		t.Fatalf("CreateNotification: %v", err)
	}

	list, err := repo.ListNotificationsByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListNotificationsByUser: %v", err)
	}
	if len(list) != 1 || list[0].Message != "For Alice" {
		t.Errorf("list = %+v, want only Alice's", list)
	}
}
