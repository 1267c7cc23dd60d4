package database

import (
	"context"
	"testing"
	"time"
)

// The Repository must satisfy the DataStore interface consumed by the
// services.
var _ DataStore = (*Repository)(nil)

func TestSeedIsIdempotent(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	if err := Seed(ctx, repo); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	admin, err := repo.GetUserByEmail(ctx, "admin@gmail.com")
	if err != nil {
		t.Fatalf("admin not seeded: %v", err)
	}
	if !admin.IsAdmin() {
		t.Error("seeded admin should hold admin role")
	}
	projects, err := repo.ListProjects(ctx)
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(projects) == 0 {
		t.Fatal("seed should create demo projects")
	}
	tasks, err := repo.ListTasksSince(ctx, time.Time{})
	if err != nil {
		t.Fatalf("ListTasksSince: %v", err)
	}
	firstCount := len(tasks)
	if firstCount == 0 {
		t.Fatal("seed should create demo tasks")
	}

	// Running again against a populated database changes nothing.
	if err := Seed(ctx, repo); err != nil {
		t.Fatalf("second Seed: %v", err)
	}
	tasks, err = repo.ListTasksSince(ctx, time.Time{})
	if err != nil {
		t.Fatalf("ListTasksSince: %v", err)
	}
	if len(tasks) != firstCount {
		t.Errorf("task count changed from %d to %d on re-seed", firstCount, len(tasks))
	}
}
