package task

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

// AssignCmd returns the task assign subcommand
func AssignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign <id> <user-id>",
		Short: "Assign a task to a user",
		Long: `Assign a task to a user. A user ID of 0 unassigns the task.
The assignee is notified unless they made the change themselves.

Examples:
  suivi task assign 12 3 --actor=1
  suivi task assign 12 0 --actor=1
`,
		Args: cobra.ExactArgs(2),
		RunE: runAssign,
	}

	cmd.Flags().Int("actor", 0, "User ID performing the change (required)")
	if err := cmd.MarkFlagRequired("actor"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runAssign(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	actorID, _ := cmd.Flags().GetInt("actor")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	taskID, err := strconv.Atoi(args[0])
	if err != nil || taskID <= 0 {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_TASK_ID",
			"task ID must be a positive integer",
			"Usage: suivi task assign <id> <user-id>"); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		os.Exit(cli.ExitUsage)
	}
	userID, err := strconv.Atoi(args[1])
	if err != nil || userID < 0 {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_USER_ID",
			"user ID must be a non-negative integer",
			"Use 0 to unassign the task"); fmtErr != nil {
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

	if err := cliInstance.App.TaskService.AssignTask(ctx, taskID, userID, actorID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			if fmtErr := formatter.Error("TASK_NOT_FOUND", fmt.Sprintf("task %d not found", taskID)); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			os.Exit(cli.ExitNotFound)
		}
		if fmtErr := formatter.Error("ASSIGN_FAILED", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		os.Exit(cli.ExitValidation)
	}

	if jsonOutput {
		return formatter.Success(map[string]interface{}{"id": taskID, "assignee": userID})
	}
	if !quietMode {
		if userID == 0 {
			fmt.Printf("✓ Task #%d unassigned\n", taskID)
		} else {
			fmt.Printf("✓ Task #%d assigned to user %d\n", taskID, userID)
		}
	}
	return nil
}
