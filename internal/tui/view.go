package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"suivi/internal/dashboard"
)

// View renders the whole dashboard
func (m Model) View() string {
	if m.showHelp {
		return m.viewHelp()
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Suivi - tableau de bord"))
	b.WriteString("  ")
	b.WriteString(subtleStyle.Render(m.filterSummary()))
	b.WriteString("\n")

	if m.searching {
		b.WriteString("Recherche: " + m.searchInput.View())
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render("Erreur: " + m.err.Error()))
		b.WriteString("\n")
	}

	if m.overview == nil {
		b.WriteString(subtleStyle.Render("Chargement..."))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.viewStatCards())
	b.WriteString("\n")
	b.WriteString(m.viewMetrics())
	b.WriteString("\n")

	table := m.viewTable()
	panel := m.viewInterventions()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, table, " ", panel))
	b.WriteString("\n")

	b.WriteString(m.viewStatusBar())
	return b.String()
}

func (m Model) filterSummary() string {
	parts := []string{
		"statut: " + m.filters.Status,
		"projet: " + m.filters.Project,
		"période: " + m.filters.TimeRange,
		"fenêtre: " + m.filters.TableTime,
		"interventions: " + m.interventionFilter,
	}
	if m.filters.Search != "" {
		parts = append(parts, fmt.Sprintf("recherche: %q", m.filters.Search))
	}
	return strings.Join(parts, " | ")
}

func (m Model) viewStatCards() string {
	cards := make([]string, 0, len(m.overview.StatCards))
	for _, card := range m.overview.StatCards {
		content := fmt.Sprintf("%s\n%d\n%s", card.Title, card.Value, subtleStyle.Render(card.Change))
		cards = append(cards, cardStyle.Render(content))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) viewMetrics() string {
	metrics := m.overview.Metrics
	return subtleStyle.Render(fmt.Sprintf(
		"Efficacité %.1f%%  Productivité %.1f%%  Charge %.1f%%  Prioritaires %.1f%%  Dans les délais %.1f%%",
		metrics.Efficiency, metrics.Productivity, metrics.Workload, metrics.PriorityRate, metrics.OnTimeRate))
}

func (m Model) viewTable() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Tâches"))
	b.WriteString("\n")

	rows := m.tableTasks()
	if len(rows) == 0 {
		b.WriteString(subtleStyle.Render("Aucune tâche dans cette fenêtre"))
	}
	for i, row := range rows {
		priority := row.Priority
		if priority == "" {
			priority = "-"
		}
		project := row.Project
		if project == "" {
			project = "-"
		}
		line := fmt.Sprintf("%-4d %-30.30s %-12.12s %-8s %s",
			row.ID, row.Name, project, priority, renderStatus(row.Status))
		if i == m.selectedRow && m.activePane == paneTable {
			line = selectedRowStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	style := panelStyle
	if m.activePane == paneTable {
		style = focusedPanelStyle
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewInterventions() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Interventions"))
	b.WriteString("\n")

	if len(m.overview.Interventions) == 0 {
		b.WriteString(subtleStyle.Render("Aucune intervention"))
	}
	for _, s := range m.overview.Interventions {
		b.WriteString(fmt.Sprintf("%-14.14s %3d  %s %s %s\n",
			s.Project, s.Interventions,
			reviewStyles["pending"].Render(fmt.Sprintf("%d att.", s.Pending)),
			reviewStyles["approved"].Render(fmt.Sprintf("%d app.", s.Approved)),
			reviewStyles["refused"].Render(fmt.Sprintf("%d ref.", s.Refused))))
	}

	style := panelStyle
	if m.activePane == paneInterventions {
		style = focusedPanelStyle
	}
	return style.Render(strings.TrimRight(b.String(), "\n"))
}

func (m Model) viewStatusBar() string {
	if m.statusMsg != "" {
		return statusBarStyle.Render(m.statusMsg)
	}
	hint := fmt.Sprintf("%s recherche  %s statut  %s projet  %s fenêtre  %s export  %s aide  %s quitter",
		m.keys.FocusSearch, m.keys.CycleStatus, m.keys.CycleProject,
		m.keys.ToggleWindow, m.keys.ExportJSON, m.keys.ShowHelp, m.keys.Quit)
	return statusBarStyle.Render(hint)
}

func (m Model) viewHelp() string {
	lines := []struct{ key, action string }{
		{m.keys.FocusSearch, "rechercher (entrée pour valider, échap pour annuler)"},
		{m.keys.CycleStatus, "filtrer par statut"},
		{m.keys.CycleProject, "filtrer par projet"},
		{m.keys.CycleTimeRange, "filtrer par période de création"},
		{m.keys.CycleIntervention, "filtrer le panneau des interventions"},
		{m.keys.ToggleWindow, "basculer la fenêtre du tableau (" + dashboard.WindowToday + "/" + dashboard.WindowAll + ")"},
		{m.keys.ClearFilters, "réinitialiser les filtres"},
		{m.keys.PrevRow + "/" + m.keys.NextRow, "naviguer dans le tableau"},
		{m.keys.PrevPane + "/" + m.keys.NextPane, "changer de panneau"},
		{m.keys.Refresh, "recharger"},
		{m.keys.ExportJSON + "/" + m.keys.ExportCSV, "exporter en JSON / CSV"},
		{m.keys.ShowHelp, "fermer l'aide"},
		{m.keys.Quit, "quitter"},
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Aide"))
	b.WriteString("\n\n")
	for _, l := range lines {
		b.WriteString(fmt.Sprintf("  %-8s %s\n", l.key, l.action))
	}
	return panelStyle.Render(b.String())
}
