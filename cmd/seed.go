package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"suivi/internal/cli"
	"suivi/internal/database"
)

// seedCmd returns the seed command, which loads demo data into an
// empty database.
func seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Load demo data into an empty database",
		Long: `Load the default admin account and a small set of demo projects,
tasks and interventions. Does nothing if the database already has users.`,
		RunE: runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cliInstance, err := cli.GetCLIFromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize: %w", err)
	}
	defer cliInstance.Close()

	if err := database.Seed(ctx, cliInstance.App.Repo()); err != nil {
		return fmt.Errorf("failed to seed database: %w", err)
	}

	fmt.Println("Database seeded.")
	return nil
}
