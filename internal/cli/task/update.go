package task

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"suivi/internal/cli"
	"suivi/internal/models"
	taskservice "suivi/internal/services/task"
)

// UpdateCmd returns the task update subcommand
func UpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task's fields",
		Long: `Update a task's name, description, priority or due date. Only the
flags you pass are changed.

Examples:
  suivi task update 12 --name="Raccordement immeuble B" --actor=1
  suivi task update 12 --priority=high --due=2026-09-30 --actor=1

  # Clear the due date
  suivi task update 12 --clear-due --actor=1
`,
		Args: cobra.ExactArgs(1),
		RunE: runUpdate,
	}

	cmd.Flags().Int("actor", 0, "User ID performing the change (required)")
	if err := cmd.MarkFlagRequired("actor"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().String("name", "", "New task name")
	cmd.Flags().String("description", "", "New description")
	cmd.Flags().String("priority", "", "New priority: low, medium, high")
	cmd.Flags().String("due", "", "New due date (YYYY-MM-DD)")
	cmd.Flags().Bool("clear-due", false, "Remove the due date")

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	actorID, _ := cmd.Flags().GetInt("actor")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")
	clearDue, _ := cmd.Flags().GetBool("clear-due")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	taskID, err := strconv.Atoi(args[0])
	if err != nil || taskID <= 0 {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_TASK_ID",
			"task ID must be a positive integer",
			"Usage: suivi task update <id> --name=... --actor=<id>"); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		os.Exit(cli.ExitUsage)
	}

	req := taskservice.UpdateTaskRequest{TaskID: taskID, ActorID: actorID}
	if cmd.Flags().Changed("name") {
		name, _ := cmd.Flags().GetString("name")
		req.Name = &name
	}
	if cmd.Flags().Changed("description") {
		description, _ := cmd.Flags().GetString("description")
		req.Description = &description
	}
	if cmd.Flags().Changed("priority") {
		priority, _ := cmd.Flags().GetString("priority")
		req.Priority = &priority
	}
	if clearDue {
		var none *time.Time
		req.DueDate = &none
	} else if cmd.Flags().Changed("due") {
		due, _ := cmd.Flags().GetString("due")
		parsed, err := time.Parse(dueDateLayout, due)
		if err != nil {
			if fmtErr := formatter.ErrorWithSuggestion("INVALID_DUE_DATE",
				fmt.Sprintf("cannot parse due date %q", due),
				"Use the YYYY-MM-DD format, e.g. --due=2026-09-15"); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			os.Exit(cli.ExitValidation)
		}
		duePtr := &parsed
		req.DueDate = &duePtr
	}

	if req.Name == nil && req.Description == nil && req.Priority == nil && req.DueDate == nil {
		if fmtErr := formatter.ErrorWithSuggestion("NOTHING_TO_UPDATE",
			"no fields given",
			"Pass at least one of --name, --description, --priority, --due, --clear-due"); fmtErr != nil {
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

	if err := cliInstance.App.TaskService.UpdateTask(ctx, req); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			if fmtErr := formatter.Error("TASK_NOT_FOUND", fmt.Sprintf("task %d not found", taskID)); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			os.Exit(cli.ExitNotFound)
		}
		if fmtErr := formatter.ErrorWithSuggestion("UPDATE_FAILED", err.Error(),
			"Valid priorities are low, medium, high"); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		os.Exit(cli.ExitValidation)
	}

	if jsonOutput {
		return formatter.Success(map[string]interface{}{"id": taskID})
	}
	if !quietMode {
		fmt.Printf("✓ Task #%d updated\n", taskID)
	}
	return nil
}
