package notification

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"suivi/internal/cli"
	"suivi/internal/models"
)

// ReadCmd returns the notification read subcommand
func ReadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "read [id]",
		Short: "Mark notifications read",
		Long: `Mark one notification read by ID, or all of a user's with --all.

Examples:
  suivi notification read 7f0be402-23a4-4e63-9f40-2f8ef17f9a60
  suivi notification read --all --user=2
`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRead,
	}

	cmd.Flags().Bool("all", false, "Mark every notification read")
	cmd.Flags().Int("user", 0, "User ID (required with --all)")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runRead(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	all, _ := cmd.Flags().GetBool("all")
	userID, _ := cmd.Flags().GetInt("user")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	if !all && len(args) == 0 {
		if fmtErr := formatter.ErrorWithSuggestion("MISSING_ARGUMENT",
			"provide a notification ID or --all",
			"Usage: suivi notification read <id> or suivi notification read --all --user=<id>"); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		os.Exit(cli.ExitUsage)
	}
	if all && userID <= 0 {
		if fmtErr := formatter.ErrorWithSuggestion("MISSING_USER",
			"--all requires --user",
			"Usage: suivi notification read --all --user=<id>"); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		os.Exit(cli.ExitUsage)
	}

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

	if all {
		if err := cliInstance.App.NotificationService.MarkAllRead(ctx, userID); err != nil {
			if fmtErr := formatter.Error("MARK_READ_FAILED", err.Error()); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			return err
		}
		if !quietMode {
			fmt.Printf("✓ All notifications for user %d marked read\n", userID)
		}
		return nil
	}

	id := args[0]
	if err := cliInstance.App.NotificationService.MarkRead(ctx, id); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			if fmtErr := formatter.Error("NOTIFICATION_NOT_FOUND", fmt.Sprintf("notification %s not found", id)); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			os.Exit(cli.ExitNotFound)
		}
		if fmtErr := formatter.Error("MARK_READ_FAILED", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return err
	}

	if !quietMode {
		fmt.Printf("✓ Notification %s marked read\n", id)
	}
	return nil
}
