package notification

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"suivi/internal/cli"
)

// ListCmd returns the notification list subcommand
func ListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a user's notifications",
		Long: `List a user's notifications, newest first.

Examples:
  suivi notification list --user=2
  suivi notification list --user=2 --unread
`,
		RunE: runList,
	}

	cmd.Flags().Int("user", 0, "User ID (required)")
	if err := cmd.MarkFlagRequired("user"); err != nil {
		slog.Error("failed to mark flag as required", "error", err)
	}
	cmd.Flags().Bool("unread", false, "Only unread notifications")
	cmd.Flags().Bool("json", false, "Output in JSON format")
	cmd.Flags().Bool("quiet", false, "Print only the unread count")

	return cmd
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	userID, _ := cmd.Flags().GetInt("user")
	unreadOnly, _ := cmd.Flags().GetBool("unread")
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

	if quietMode {
		count, err := cliInstance.App.NotificationService.UnreadCount(ctx, userID)
		if err != nil {
			return err
		}
		fmt.Printf("%d\n", count)
		return nil
	}

	notifications, err := cliInstance.App.NotificationService.ListForUser(ctx, userID)
	if err != nil {
		if fmtErr := formatter.Error("NOTIFICATION_FETCH_ERROR", err.Error()); fmtErr != nil {
			slog.Error("failed to format error message", "error", fmtErr)
		}
		return err
	}

	if unreadOnly {
		filtered := notifications[:0]
		for _, n := range notifications {
			if n.ReadAt == nil {
				filtered = append(filtered, n)
			}
		}
		notifications = filtered
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(map[string]interface{}{
			"success":       true,
			"notifications": notifications,
		})
	}

	if len(notifications) == 0 {
		fmt.Println("No notifications")
		return nil
	}

	for _, n := range notifications {
		marker := "•"
		if n.ReadAt != nil {
			marker = " "
		}
		fmt.Printf("  %s [%s] %s\n", marker, n.ID, n.Message)
	}
	return nil
}
