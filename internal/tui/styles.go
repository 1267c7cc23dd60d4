package tui

import (
	"github.com/charmbracelet/lipgloss"

	"suivi/internal/config"
	"suivi/internal/models"
)

var (
	titleStyle        lipgloss.Style
	subtleStyle       lipgloss.Style
	panelStyle        lipgloss.Style
	focusedPanelStyle lipgloss.Style
	cardStyle         lipgloss.Style
	selectedRowStyle  lipgloss.Style
	statusBarStyle    lipgloss.Style
	errorStyle        lipgloss.Style

	statusStyles map[string]lipgloss.Style
	reviewStyles map[string]lipgloss.Style
)

// initStyles builds every style from the configured color scheme.
func initStyles(colors config.ColorScheme) {
	titleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.Title))

	subtleStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color(colors.Subtle))

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colors.PanelBorder)).
		Padding(0, 1)

	focusedPanelStyle = panelStyle.
		BorderForeground(lipgloss.Color(colors.SelectedBorder))

	cardStyle = lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(colors.PanelBorder)).
		Padding(0, 1).
		Width(20)

	selectedRowStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(colors.SelectedBg)).
		Bold(true)

	statusBarStyle = lipgloss.NewStyle().
		Background(lipgloss.Color(colors.StatusBarBg)).
		Foreground(lipgloss.Color(colors.StatusBarText)).
		Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colors.ErrorFg)).
		Background(lipgloss.Color(colors.ErrorBg)).
		Padding(0, 1)

	statusStyles = map[string]lipgloss.Style{
		models.StatusPending:    lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Pending)),
		models.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.InProgress)),
		models.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Completed)),
	}

	reviewStyles = map[string]lipgloss.Style{
		models.InterventionPending:  lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Pending)),
		models.InterventionApproved: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Approved)),
		models.InterventionRefused:  lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Refused)),
	}
}

// renderStatus colors a status word, falling back to plain text for
// anything unknown.
func renderStatus(status string) string {
	if style, ok := statusStyles[status]; ok {
		return style.Render(status)
	}
	return status
}
