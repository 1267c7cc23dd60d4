package task

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"suivi/internal/cli"
	"suivi/internal/cli/styles"
	"suivi/internal/config"
	"suivi/internal/models"
)

// ShowCmd returns the task show subcommand
func ShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show [id]",
		Short: "Show task details",
		Long:  "Display all details of a task including description, products, interventions, and metadata.",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runShow,
	}

	cmd.Flags().Int("id", 0, "Task ID (can also be provided as positional argument)")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var taskID int
	if len(args) > 0 {
		fmt.Sscanf(args[0], "%d", &taskID)
	} else {
		taskID, _ = cmd.Flags().GetInt("id")
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	if taskID <= 0 {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_TASK_ID",
			"task ID must be a positive integer",
			"Usage: suivi task show <id> or suivi task show --id=<id>"); fmtErr != nil {
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

	task, err := cliInstance.App.TaskService.GetTask(ctx, taskID)
	if err != nil {
		if fmtErr := formatter.Error("TASK_NOT_FOUND", fmt.Sprintf("task %d not found", taskID)); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		os.Exit(cli.ExitNotFound)
	}

	interventions, err := cliInstance.App.InterventionService.ListByTask(ctx, taskID)
	if err != nil {
		interventions = nil
	}

	if quietMode {
		fmt.Printf("%d\n", task.ID)
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":       true,
			"task":          task,
			"interventions": interventions,
		})
	}

	cfg, err := config.Load()
	if err != nil {
		cfg = config.Default()
	}
	return outputHuman(task, interventions, cfg.ColorScheme)
}

func outputHuman(task *models.Task, interventions []models.Intervention, colors config.ColorScheme) error {
	styles.Init(colors)

	var content strings.Builder
	content.WriteString(styles.TitleStyle.Render(fmt.Sprintf("#%d %s", task.ID, task.Name)))
	content.WriteString("\n\n")

	content.WriteString(styles.LabelStyle.Render("Status: "))
	content.WriteString(styles.BoldColoredText(task.Status, styles.StatusColor(colors, task.Status)))
	content.WriteString("\n")

	priority := task.Priority
	if priority == "" {
		priority = "unset"
	}
	content.WriteString(styles.LabelStyle.Render("Priority: "))
	content.WriteString(styles.ValueStyle.Render(priority))
	content.WriteString("\n")

	if project := task.ProjectName(); project != "" {
		content.WriteString(styles.LabelStyle.Render("Project: "))
		content.WriteString(styles.ValueStyle.Render(project))
		content.WriteString("\n")
	}

	if task.AssignedUserID != 0 {
		content.WriteString(styles.LabelStyle.Render("Assignee: "))
		content.WriteString(styles.ValueStyle.Render(fmt.Sprintf("user %d", task.AssignedUserID)))
		content.WriteString("\n")
	}

	if task.DueDate != nil {
		content.WriteString(styles.LabelStyle.Render("Due: "))
		content.WriteString(styles.ValueStyle.Render(task.DueDate.Format(dueDateLayout)))
		content.WriteString("\n")
	}

	if task.Description != "" {
		content.WriteString(styles.SectionStyle.Render("Description"))
		content.WriteString("\n")
		content.WriteString(renderMarkdown(task.Description))
		content.WriteString("\n")
	}

	if len(interventions) > 0 {
		content.WriteString(styles.SectionStyle.Render("Interventions"))
		content.WriteString("\n")
		for _, iv := range interventions {
			status := styles.BoldColoredText(iv.Status, styles.ReviewColor(colors, iv.Status))
			content.WriteString(fmt.Sprintf("  [%d] %s %s\n", iv.ID, status, iv.Description))
		}
	}

	content.WriteString("\n")
	content.WriteString(styles.SubtitleStyle.Render(fmt.Sprintf("Created %s, updated %s",
		task.CreatedAt.Format(dueDateLayout), task.UpdatedAt.Format(dueDateLayout))))

	fmt.Println(styles.RenderCard(content.String()))
	return nil
}

// renderMarkdown renders the description through glamour, falling back
// to the raw text when the terminal renderer cannot be built.
func renderMarkdown(description string) string {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(styles.CardWidth-6),
	)
	if err != nil {
		return description
	}
	rendered, err := renderer.Render(description)
	if err != nil {
		return description
	}
	return strings.TrimSpace(rendered)
}
