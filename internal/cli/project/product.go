package project

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

// ProductCmd returns the product subcommand group
func ProductCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage a project's products",
	}

	cmd.AddCommand(productAddCmd())
	cmd.AddCommand(productRemoveCmd())

	return cmd
}

func productAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <project-id>",
		Short: "Add a product to a project",
		Long: `Add a product to a project.

Examples:
  suivi project product add 1 --name=FTTH
`,
		Args: cobra.ExactArgs(1),
		RunE: runProductAdd,
	}

	cmd.Flags().String("name", "", "Product name (required)")
	if err := cmd.MarkFlagRequired("name"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output (ID only)")

	return cmd
}

func runProductAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	name, _ := cmd.Flags().GetString("name")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	projectID, err := strconv.Atoi(args[0])
	if err != nil || projectID <= 0 {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_PROJECT_ID",
			"project ID must be a positive integer",
			"Usage: suivi project product add <project-id> --name=<name>"); fmtErr != nil {
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

	created, err := cliInstance.App.ProjectService.AddProduct(ctx, projectID, name)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			if fmtErr := formatter.Error("PROJECT_NOT_FOUND", fmt.Sprintf("project %d not found", projectID)); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			os.Exit(cli.ExitNotFound)
		}
		if fmtErr := formatter.Error("CREATE_FAILED", err.Error()); fmtErr != nil {
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
	fmt.Printf("✓ Added product #%d %s to project #%d\n", created.ID, created.Name, projectID)
	return nil
}

func productRemoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remove <product-id>",
		Short: "Remove a product",
		Long:  "Remove a product and its task links.",
		Args:  cobra.ExactArgs(1),
		RunE:  runProductRemove,
	}

	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Minimal output")

	return cmd
}

func runProductRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	jsonOutput, _ := cmd.Flags().GetBool("json")
	quietMode, _ := cmd.Flags().GetBool("quiet")

	formatter := &cli.OutputFormatter{JSON: jsonOutput, Quiet: quietMode}

	productID, err := strconv.Atoi(args[0])
	if err != nil || productID <= 0 {
		if fmtErr := formatter.ErrorWithSuggestion("INVALID_PRODUCT_ID",
			"product ID must be a positive integer",
			"Usage: suivi project product remove <product-id>"); fmtErr != nil {
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

	if err := cliInstance.App.ProjectService.RemoveProduct(ctx, productID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			if fmtErr := formatter.Error("PRODUCT_NOT_FOUND", fmt.Sprintf("product %d not found", productID)); fmtErr != nil {
				slog.Error("failed to format error message", "error", fmtErr)
			}
			os.Exit(cli.ExitNotFound)
		}
		if fmtErr := formatter.Error("DELETE_FAILED", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return err
	}

	if jsonOutput {
		return formatter.Success(map[string]interface{}{"id": productID, "deleted": true})
	}
	if !quietMode {
		fmt.Printf("✓ Product #%d removed\n", productID)
	}
	return nil
}
