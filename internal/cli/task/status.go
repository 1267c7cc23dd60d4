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

// StatusCmd returns the task status subcommand
func StatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status <id> <status>",
		Short: "Change a task's status",
		Long: `Change a task's status. Moving to completed stamps the completion
time; moving away clears it.

Examples:
  suivi task status 12 in-progress --actor=2
  suivi task status 12 completed --actor=2
`,
		Args: cobra.ExactArgs(2),
		RunE: runStatus,
	}

	cmd.Flags().Int("actor", 0, "User ID performing the change (required)")
	if err := cmd.MarkFlagRequired("actor"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runStatus(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	actorID, _ := cmd.Flags().GetInt("actor")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	taskID, err := strconv.Atoi(args[0])
	if err != nil || taskID <= 0 {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_TASK_ID",
			"task ID must be a positive integer",
			"Usage: suivi task status <id> <status>"); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		os.Exit(cli.ExitUsage)
	}
	status := args[1]

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

	if err := cliInstance.App.TaskService.ChangeStatus(ctx, taskID, status, actorID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			if fmtErr := formatter.Error("TASK_NOT_FOUND", fmt.Sprintf("task %d not found", taskID)); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			os.Exit(cli.ExitNotFound)
		}
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_STATUS", err.Error(),
			"Valid statuses are: pending, in-progress, completed"); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		os.Exit(cli.ExitValidation)
	}

	if jsonOutput {
		return formatter.Success(map[string]interface{}{"id": taskID, "status": status})
	}
	if !quietMode {
		fmt.Printf("✓ Task #%d moved to %s\n", taskID, status)
	}
	return nil
}
