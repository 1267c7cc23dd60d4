package cmd

import (
	"github.com/spf13/cobra"

	"suivi/internal/cli/intervention"
	"suivi/internal/cli/notification"
	"suivi/internal/cli/project"
	"suivi/internal/cli/task"
	"suivi/internal/cli/user"
)

var rootCmd = &cobra.Command{
	Use:   "suivi",
	Short: "Suivi - task and intervention tracking",
	Long:  `Suivi tracks tasks, the interventions logged against them, and the review workflow around both, with a terminal dashboard and an HTTP API.`,
}

func init() {
	rootCmd.AddCommand(task.TaskCmd())
	rootCmd.AddCommand(intervention.InterventionCmd())
	rootCmd.AddCommand(user.UserCmd())
	rootCmd.AddCommand(project.ProjectCmd())
	rootCmd.AddCommand(notification.NotificationCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(dashboardCmd())
}

func Execute() error {
	return rootCmd.Execute()
}
