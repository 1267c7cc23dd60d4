package database

import (
	"context"
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"suivi/internal/models"
)

// setupTestDB creates an in-memory database and runs migrations.
// This is the unified test database setup used by all tests.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}
	if err := runMigrations(context.Background(), db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func setupTestRepo(t *testing.T) *Repository {
	t.Helper()
	return NewRepository(setupTestDB(t))
}

// createTestUser inserts a user with a throwaway password hash.
func createTestUser(t *testing.T, repo *Repository, name, email string) *models.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), name, email, "x", models.RoleUser)
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", email, err)
	}
	return user
}

// createTestProduct inserts a project and one product under it, returning
// the product ID.
func createTestProduct(t *testing.T, repo *Repository, projectName, productName string) int {
	t.Helper()
	ctx := context.Background()
	project, err := repo.GetProjectByName(ctx, projectName)
	if err != nil {
		project, err = repo.CreateProject(ctx, projectName, "")
		if err != nil {
			t.Fatalf("Failed to create project %s: %v", projectName, err)
		}
	}
	product, err := repo.CreateProduct(ctx, project.ID, productName)
	if err != nil {
		t.Fatalf("Failed to create product %s: %v", productName, err)
	}
	return product.ID
}

// createTestTask inserts a pending task created by the given user.
func createTestTask(t *testing.T, repo *Repository, name string, createdBy int, productIDs ...int) *models.Task {
	t.Helper()
	task, err := repo.CreateTask(context.Background(), CreateTaskParams{
		Name:       name,
		Status:     models.StatusPending,
		CreatedBy:  createdBy,
		ProductIDs: productIDs,
	})
	if err != nil {
		t.Fatalf("Failed to create task %s: %v", name, err)
	}
	return task
}
