package intervention

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"suivi/internal/cli"
	"suivi/internal/models"
)

// ListCmd returns the intervention list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List interventions",
		Long: `List interventions, newest first, optionally narrowed to one task
or one review status.

Examples:
  suivi intervention list
  suivi intervention list --task=12
  suivi intervention list --status=pending --quiet
`,
		RunE: runList,
	}

	cmd.Flags().Int("task", 0, "Filter by task ID")
	cmd.Flags().String("status", "", "Filter by review status: pending, approved, refused")
	cmd.Flags().Bool("summary", false, "Show per-project totals instead of rows")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (IDs only)")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	taskID, _ := cmd.Flags().GetInt("task")
	status, _ := cmd.Flags().GetString("status")
	summary, _ := cmd.Flags().GetBool("summary")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	if status != "" && !models.ValidInterventionStatus(status) {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_STATUS",
			fmt.Sprintf("unknown review status %q", status),
			"Valid statuses are: pending, approved, refused"); fmtErr != nil {
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

	if summary {
		return runSummary(cmd, cliInstance, formatter)
	}

	var interventions []models.Intervention
	if taskID > 0 {
		interventions, err = cliInstance.App.InterventionService.ListByTask(ctx, taskID)
	} else {
		interventions, err = cliInstance.App.InterventionService.ListInterventions(ctx)
	}
	if err != nil {
		if fmtErr := formatter.Error("INTERVENTION_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return err
	}

	if status != "" {
		filtered := interventions[:0]
		for _, iv := range interventions {
			if iv.Status == status {
				filtered = append(filtered, iv)
			}
		}
		interventions = filtered
	}

	if quietMode {
		for _, iv := range interventions {
			fmt.Printf("%d\n", iv.ID)
		}
		return nil
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":       true,
			"interventions": interventions,
		})
	}

	if len(interventions) == 0 {
		fmt.Println("No interventions found")
		return nil
	}

	fmt.Printf("Found %d interventions:\n\n", len(interventions))
	for _, iv := range interventions {
		fmt.Printf("  [%d] task #%d by user %d (%s): %s\n",
			iv.ID, iv.TaskID, iv.UserID, iv.Status, iv.Description)
	}

	return nil
}

func runSummary(cmd *cobra.Command, cliInstance *cli.CLI, formatter *cli.OutputFormatter) error {
	ctx := cmd.Context()

	summaries, err := cliInstance.App.InterventionService.SummarizeByProject(ctx)
	if err != nil {
		if fmtErr := formatter.Error("SUMMARY_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return err
	}

	if formatter.JSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":   true,
			"summaries": summaries,
		})
	}

	if len(summaries) == 0 {
		fmt.Println("No interventions found")
		return nil
	}

	for _, s := range summaries {
		fmt.Printf("  %-20s %3d total  %3d pending  %3d approved  %3d refused\n",
			s.Project, s.Interventions, s.Pending, s.Approved, s.Refused)
	}
	return nil
}
