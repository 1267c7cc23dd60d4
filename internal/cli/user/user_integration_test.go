package user

import (
	"strings"
	"testing"

	clitest "suivi/internal/testutil/cli"
)

func TestAddAndListUsers(t *testing.T) {
	db, testApp := clitest.SetupCLITest(t)

	addCmd := AddCmd()
	output, err := clitest.ExecuteCLICommand(t, testApp, addCmd, []string{
		"--name", "Alice Martin",
		"--email", "alice@example.com",
		"--password", "secret1",
		"--quiet",
	})
	if err != nil {
		t.Fatalf("add command failed: %v", err)
	}
	if strings.TrimSpace(output) == "" {
		t.Fatal("expected a user ID on stdout")
	}

	var role string
	if err := db.QueryRow("SELECT role FROM users WHERE email = ?", "alice@example.com").Scan(&role); err != nil {
		t.Fatalf("user not found: %v", err)
	}
	if role != "user" {
		t.Errorf("expected default role user, got %q", role)
	}

	listCmd := ListCmd()
	output, err = clitest.ExecuteCLICommand(t, testApp, listCmd, nil)
	if err != nil {
		t.Fatalf("list command failed: %v", err)
	}
	if !strings.Contains(output, "alice@example.com") {
		t.Errorf("expected user in list output, got: %s", output)
	}
}

func TestAddAdminAndToggleRole(t *testing.T) {
	db, testApp := clitest.SetupCLITest(t)

	addCmd := AddCmd()
	if _, err := clitest.ExecuteCLICommand(t, testApp, addCmd, []string{
		"--name", "Boss",
		"--email", "boss@example.com",
		"--password", "secret1",
		"--admin",
		"--quiet",
	}); err != nil {
		t.Fatalf("add command failed: %v", err)
	}

	var role string
	if err := db.QueryRow("SELECT role FROM users WHERE email = ?", "boss@example.com").Scan(&role); err != nil {
		t.Fatalf("user not found: %v", err)
	}
	if role != "admin" {
		t.Fatalf("expected admin role, got %q", role)
	}

	roleCmd := RoleCmd()
	output, err := clitest.ExecuteCLICommand(t, testApp, roleCmd, []string{"1"})
	if err != nil {
		t.Fatalf("role command failed: %v", err)
	}
	if !strings.Contains(output, "now user") {
		t.Errorf("expected toggle confirmation, got: %q", output)
	}
}
