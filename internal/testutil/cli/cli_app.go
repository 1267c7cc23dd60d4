// Package cli provides helpers for CLI command tests. It lives apart
// from testutil so service tests can import testutil without pulling
// in the app container.
package cli

import (
	"context"
	"database/sql"
	"testing"

	"github.com/spf13/cobra"

	"suivi/internal/app"
	clipkg "suivi/internal/cli"
	"suivi/internal/testutil"
)

// SetupCLITest creates an in-memory DB and returns both the DB and App
// instance. Event publishing is nil here, it is tested elsewhere.
func SetupCLITest(t *testing.T) (*sql.DB, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	return db, app.New(db)
}

// ExecuteCLICommand executes a CLI command against a test app instance.
// The app rides on the command context so the command skips opening the
// user's real database.
func ExecuteCLICommand(t *testing.T, testApp *app.App, cmd *cobra.Command, args []string) (string, error) {
	t.Helper()

	if testApp == nil {
		t.Fatal("testApp cannot be nil - SetupCLITest must be called first")
	}

	cmd.SetArgs(args)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	ctx := clipkg.WithApp(context.Background(), testApp)

	var executeErr error
	output := testutil.CaptureOutput(t, func() {
		executeErr = cmd.ExecuteContext(ctx)
	})

	return output, executeErr
}

// CreateTestUser wraps testutil.CreateTestUser for CLI tests.
func CreateTestUser(t *testing.T, db *sql.DB, name, email, role string) int {
	t.Helper()
	return testutil.CreateTestUser(t, db, name, email, role)
}

// CreateTestProject wraps testutil.CreateTestProject for CLI tests.
func CreateTestProject(t *testing.T, db *sql.DB, name string) int {
	t.Helper()
	return testutil.CreateTestProject(t, db, name)
}

// CreateTestTask wraps testutil.CreateTestTask for CLI tests.
func CreateTestTask(t *testing.T, db *sql.DB, name string, createdBy int) int {
	t.Helper()
	return testutil.CreateTestTask(t, db, name, createdBy)
}
