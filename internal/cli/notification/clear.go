package notification

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"suivi/internal/cli"
)

// ClearCmd returns the notification clear subcommand
func ClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all of a user's notifications",
		RunE:  runClear,
	}

	cmd.Flags().Int("user", 0, "User ID (required)")
	if err := cmd.MarkFlagRequired("user"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	userID, _ := cmd.Flags().GetInt("user")
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

	if err := cliInstance.App.NotificationService.ClearAll(ctx, userID); err != nil {
		if fmtErr := formatter.Error("CLEAR_FAILED", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return err
	}

	if jsonOutput {
		return formatter.Success(map[string]interface{}{"user": userID, "cleared": true})
	}
	if !quietMode {
		fmt.Printf("✓ Notifications cleared for user %d\n", userID)
	}
	return nil
}
