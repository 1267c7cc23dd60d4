package intervention

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

// ReviewCmd returns the intervention review subcommand
func ReviewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review <id> <approved|refused>",
		Short: "Approve or refuse an intervention",
		Long: `Approve or refuse a pending intervention. The author is notified
of the decision.

Examples:
  suivi intervention review 7 approved --actor=1
  suivi intervention review 7 refused --actor=1
`,
		Args: cobra.ExactArgs(2),
		RunE: runReview,
	}

	cmd.Flags().Int("actor", 0, "Reviewer user ID (required)")
	if err := cmd.MarkFlagRequired("actor"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runReview(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	actorID, _ := cmd.Flags().GetInt("actor")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_INTERVENTION_ID",
			"intervention ID must be a positive integer",
			"Usage: suivi intervention review <id> <approved|refused>"); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		os.Exit(cli.ExitUsage)
	}
	decision := args[1]

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

	if err := cliInstance.App.InterventionService.Review(ctx, id, decision, actorID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			if fmtErr := formatter.Error("INTERVENTION_NOT_FOUND", fmt.Sprintf("intervention %d not found", id)); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			os.Exit(cli.ExitNotFound)
		}
		if fmtErr := formatter.ErrorWithSuggestion("REVIEW_FAILED", err.Error(),
			"The decision must be approved or refused"); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		os.Exit(cli.ExitValidation)
	}

	if jsonOutput {
		return formatter.Success(map[string]interface{}{"id": id, "status": decision})
	}
	if !quietMode {
		fmt.Printf("✓ Intervention #%d %s\n", id, decision)
	}
	return nil
}
