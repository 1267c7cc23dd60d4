package task

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"suivi/internal/cli"
	taskservice "suivi/internal/services/task"
)

const dueDateLayout = "2006-01-02"

// CreateCmd returns the task create subcommand
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new task",
		Long: `Create a new task with specified attributes.

Examples:
  # Simple task (human-readable output)
  suivi task create --name="Raccordement immeuble A" --actor=1

  # JSON output for agents
  suivi task create --name="Raccordement immeuble A" --actor=1 --json

  # Quiet mode for bash capture
  TASK_ID=$(suivi task create --name="Raccordement immeuble A" --actor=1 --quiet)

  # Full example with all options
  suivi task create \
    --name="Raccordement immeuble A" \
    --description="Tirage et soudure" \
    --priority=high \
    --due=2026-09-15 \
    --assignee=2 \
    --product=3 --product=4 \
    --actor=1
`,
		RunE: runCreate,
	}

	cmd.Flags().String("name", "", "Task name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().Int("actor", 0, "User ID performing the creation (required)")
	if err := cmd.MarkFlagRequired("actor"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}

	cmd.Flags().String("description", "", "Task description (use - for stdin)")
	cmd.Flags().String("priority", "", "Priority: low, medium, high")
	cmd.Flags().String("status", "", "Initial status: pending, in-progress, completed")
	cmd.Flags().String("due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().Int("assignee", 0, "User ID to assign the task to")
	cmd.Flags().IntSlice("product", nil, "Product ID to attach (repeatable)")

	// Agent-friendly flags
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	priority, _ := cmd.Flags().GetString("priority")
	status, _ := cmd.Flags().GetString("status")
	due, _ := cmd.Flags().GetString("due")
	assignee, _ := cmd.Flags().GetInt("assignee")
	productIDs, _ := cmd.Flags().GetIntSlice("product")
	actorID, _ := cmd.Flags().GetInt("actor")
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

	// Handle description from stdin
	if description == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			if fmtErr := formatter.Error("STDIN_READ_ERROR", err.Error()); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			return err
		}
		description = string(data)
	}

	var dueDate *time.Time
	if due != "" {
		parsed, err := time.Parse(dueDateLayout, due)
		if err != nil {
			if fmtErr := formatter.ErrorWithSuggestion("INVALID_DUE_DATE",
				fmt.Sprintf("cannot parse due date %q", due),
				"Use the YYYY-MM-DD format, e.g. --due=2026-09-15"); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			os.Exit(cli.ExitValidation)
		}
		dueDate = &parsed
	}

	task, err := cliInstance.App.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		Name:           name,
		Description:    description,
		Status:         status,
		Priority:       priority,
		DueDate:        dueDate,
		AssignedUserID: assignee,
		CreatedBy:      actorID,
		ProductIDs:     productIDs,
	})
	if err != nil {
		if fmtErr := formatter.ErrorWithSuggestion("CREATE_FAILED", err.Error(),
			"Valid statuses are pending, in-progress, completed; valid priorities are low, medium, high"); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		os.Exit(cli.ExitValidation)
	}

	if quietMode {
		fmt.Printf("%d\n", task.ID)
		return nil
	}
	if jsonOutput {
		return formatter.Success(task)
	}

	fmt.Printf("✓ Created task #%d: %s\n", task.ID, task.Name)
	if task.AssignedUserID != 0 {
		fmt.Printf("  Assigned to user %d\n", task.AssignedUserID)
	}
	return nil
}
