package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"suivi/internal/cli"
	"suivi/internal/dashboard"
)

// exportCmd returns the export command, which writes a filtered
// dashboard snapshot to a file.
func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the dashboard table",
		Long: `Export the filtered dashboard table to JSON or CSV.

Examples:
  # Full export as JSON, named dashboard-export-<date>.json
  suivi export

  # Completed tasks of one project as CSV
  suivi export --format=csv --status=completed --project=Fibre

  # Write to a specific path
  suivi export --out=/tmp/tasks.csv --format=csv
`,
		RunE: runExport,
	}

	cmd.Flags().String("format", dashboard.FormatJSON, "Export format: json or csv")
	cmd.Flags().String("out", "", "Output path (defaults to the generated filename)")
	cmd.Flags().String("search", "", "Search term over task, project and description")
	cmd.Flags().String("status", dashboard.FilterAll, "Status filter: all, pending, in-progress, completed")
	cmd.Flags().String("project", dashboard.FilterAll, "Project name filter")
	cmd.Flags().String("time-range", dashboard.FilterAll, "Creation range: all, today, this-week, this-month")
	cmd.Flags().String("window", dashboard.WindowAll, "Table window: all or today")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	format, _ := cmd.Flags().GetString("format")
	outPath, _ := cmd.Flags().GetString("out")
	search, _ := cmd.Flags().GetString("search")
	status, _ := cmd.Flags().GetString("status")
	projectName, _ := cmd.Flags().GetString("project")
	timeRange, _ := cmd.Flags().GetString("time-range")
	window, _ := cmd.Flags().GetString("window")

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer func() {
		if err := cliInstance.Close(); err != nil {
			slog.Error("failed to close CLI", "error", err)
		}
	}()

	filters := dashboard.FilterState{
		Search:    search,
		Status:    status,
		Project:   projectName,
		TimeRange: timeRange,
		TableTime: window,
	}

	result, err := cliInstance.App.DashboardService.Export(ctx, filters, format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(cli.ExitValidation)
	}

	if outPath == "" {
		outPath = result.Filename
	}

	fs := afero.NewOsFs()
	if err := afero.WriteFile(fs, outPath, result.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	fmt.Printf("Wrote %s (%d bytes)\n", outPath, len(result.Data))
	return nil
}
