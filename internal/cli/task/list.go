package task

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"suivi/internal/cli"
	"suivi/internal/models"
)

// ListCmd returns the task list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long: `List tasks, optionally narrowed to one status or one assignee.

Examples:
  # All tasks
  suivi task list

  # Only in-progress tasks
  suivi task list --status=in-progress

  # Tasks assigned to user 2, IDs only
  suivi task list --assignee=2 --quiet
`,
		RunE: runList,
	}

	cmd.Flags().String("status", "", "Filter by status: pending, in-progress, completed")
	cmd.Flags().Int("assignee", 0, "Filter by assigned user ID")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	status, _ := cmd.Flags().GetString("status")
	assignee, _ := cmd.Flags().GetInt("assignee")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	if status != "" && !models.ValidStatus(status) {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_STATUS",
			fmt.Sprintf("unknown status %q", status),
			"Valid statuses are: pending, in-progress, completed"); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		os.Exit(cli.ExitValidation)
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

	var tasks []models.Task
	if assignee > 0 {
		tasks, err = cliInstance.App.TaskService.ListMyTasks(ctx, assignee)
	} else {
		tasks, err = cliInstance.App.TaskService.ListTasks(ctx)
	}
	if err != nil {
		if fmtErr := formatter.Error("TASK_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return err
	}

	if status != "" {
		filtered := tasks[:0]
		for _, t := range tasks {
			if t.Status == status {
				filtered = append(filtered, t)
			}
		}
		tasks = filtered
	}

	if quietMode {
		for _, t := range tasks {
			fmt.Printf("%d\n", t.ID)
		}
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success": true,
			"tasks":   tasks,
		})
	}

	if len(tasks) == 0 {
		fmt.Println("No tasks found")
		return nil
	}

	fmt.Printf("Found %d tasks:\n\n", len(tasks))
	for _, t := range tasks {
		line := fmt.Sprintf("  [%d] %s (%s", t.ID, t.Name, t.Status)
		if t.Priority != "" {
			line += ", " + t.Priority
		}
		line += ")"
		if project := t.ProjectName(); project != "" {
			line += " - " + project
		}
		fmt.Println(line)
	}

	return nil
}
