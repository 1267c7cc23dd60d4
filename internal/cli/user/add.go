package user

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"suivi/internal/cli"
	"suivi/internal/models"
	userservice "suivi/internal/services/user"
)

// AddCmd returns the user add subcommand
func AddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a user account",
		Long: `Create a user account.

Examples:
  suivi user add --name="Alice Martin" --email=alice@example.com --password=secret1
  suivi user add --name="Admin" --email=admin@example.com --password=secret1 --admin
`,
		RunE: runAdd,
	}

	cmd.Flags().String("name", "", "Display name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().String("email", "", "Email address (required)")
	if err := cmd.MarkFlagRequired("email"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().String("password", "", "Password, at least 6 characters (required)")
	if err := cmd.MarkFlagRequired("password"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().Bool("admin", false, "Grant the admin role")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name, _ := cmd.Flags().GetString("name")
	email, _ := cmd.Flags().GetString("email")
	password, _ := cmd.Flags().GetString("password")
	admin, _ := cmd.Flags().GetBool("admin")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		if fmtErr := formatter.Error("INITIALIZATION_ERROR", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return err
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	role := models.RoleUser
	if admin {
		role = models.RoleAdmin
	}

	created, err := cliInstance.App.UserService.Register(ctx, name, email, password, role)
	if err != nil {
		if errors.Is(err, userservice.ErrEmailTaken) {
			if fmtErr := formatter.ErrorWithSuggestion("EMAIL_TAKEN",
				fmt.Sprintf("the address %s already has an account", email),
				"Use 'suivi user list' to see existing accounts"); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			os.Exit(cli.ExitDataErr)
		}
		if fmtErr := formatter.Error("REGISTER_FAILED", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		os.Exit(cli.ExitValidation)
	}

	if quietMode {
		fmt.Printf("%d\n", created.ID)
		return nil
	}
	if jsonOutput {
		return formatter.Success(created)
	}
	fmt.Printf("✓ Created %s account #%d: %s <%s>\n", created.Role, created.ID, created.Name, created.Email)
	return nil
}
