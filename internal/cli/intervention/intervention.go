package intervention

import (
	"github.com/spf13/cobra"
)

// InterventionCmd returns the intervention parent command
func InterventionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "intervention",
		Short: "Manage interventions",
	}

	cmd.AddCommand(LogCmd())
	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ReviewCmd())

	return cmd
}
