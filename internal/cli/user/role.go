package user

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"suivi/internal/cli"
	"suivi/internal/models"
)

// RoleCmd returns the user role subcommand
func RoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role <id>",
		Short: "Toggle a user's role between admin and user",
		Args:  cobra.ExactArgs(1),
		RunE:  runRole,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runRole(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_USER_ID",
			"user ID must be a positive integer",
			"Usage: suivi user role <id>"); fmtErr != nil {
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

	updated, err := cliInstance.App.UserService.ToggleRole(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			if fmtErr := formatter.Error("USER_NOT_FOUND", fmt.Sprintf("user %d not found", id)); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			os.Exit(cli.ExitNotFound)
		}
		if fmtErr := formatter.Error("ROLE_CHANGE_FAILED", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return err
	}

	if jsonOutput {
		return formatter.Success(updated)
	}
	if !quietMode {
		fmt.Printf("✓ User #%d is now %s\n", updated.ID, updated.Role)
	}
	return nil
}
