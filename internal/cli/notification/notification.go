package notification

import (
	"github.com/spf13/cobra"
)

// NotificationCmd returns the notification parent command
func NotificationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "notification",
		Short: "Manage notifications",
	}

	cmd.AddCommand(ListCmd())
	cmd.AddCommand(ReadCmd())
	cmd.AddCommand(ClearCmd())

	return cmd
}
