package intervention

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"suivi/internal/cli"
)

// LogCmd returns the intervention log subcommand
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log <task-id>",
		Short: "Log an intervention against a task",
		Long: `Log an intervention against a task. The intervention starts in
pending review and every admin is notified.

Examples:
  suivi intervention log 12 --actor=2 --description="Soudure reprise sur PM3"

  # Description from stdin
  cat report.md | suivi intervention log 12 --actor=2 --description=-
`,
		Args: cobra.ExactArgs(1),
		RunE: runLog,
	}

	cmd.Flags().Int("actor", 0, "User ID logging the intervention (required)")
	if err := cmd.MarkFlagRequired("actor"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().String("description", "", "What was done (required, use - for stdin)")
	if err := cmd.MarkFlagRequired("description"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runLog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	actorID, _ := cmd.Flags().GetInt("actor")
	description, _ := cmd.Flags().GetString("description")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	taskID, err := strconv.Atoi(args[0])
	if err != nil || taskID <= 0 {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_TASK_ID",
			"task ID must be a positive integer",
			"Usage: suivi intervention log <task-id> --actor=<id> --description=..."); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		os.Exit(cli.ExitUsage)
	}

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

	created, err := cliInstance.App.InterventionService.LogIntervention(ctx, taskID, actorID, description)
	if err != nil {
		if fmtErr := formatter.Error("LOG_FAILED", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		os.Exit(cli.ExitValidation)
	}

	if quietMode {
		fmt.Printf("%d\n", created.ID)
		return nil
	}
	if jsonOutput {
		return formatter.Success(created)
	}
	fmt.Printf("✓ Logged intervention #%d on task #%d (pending review)\n", created.ID, taskID)
	return nil
}
