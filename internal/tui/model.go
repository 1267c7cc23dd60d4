// Package tui implements the interactive terminal dashboard: metric
// cards, the per-project intervention panel, and the filterable task
// table, driven by the same filter state as the HTTP API.
package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"suivi/internal/app"
	"suivi/internal/config"
	"suivi/internal/dashboard"
	"suivi/internal/events"
	dashboardservice "suivi/internal/services/dashboard"
)

// Panes the user can focus.
const (
	paneTable = iota
	paneInterventions
)

// Model represents the dashboard TUI state
type Model struct {
	app    *app.App
	keys   config.KeyMappings
	daemon events.EventPublisher

	filters            dashboard.FilterState
	interventionFilter string
	overview           *dashboardservice.Overview
	eventCh            <-chan events.Event

	searchInput textinput.Model
	searching   bool

	activePane  int
	selectedRow int

	width  int
	height int

	statusMsg string
	err       error
	showHelp  bool
}

// InitialModel creates the TUI model. Data is loaded asynchronously by
// the first command Init returns. A nil daemon client degrades to the
// periodic refresh alone.
func InitialModel(application *app.App, cfg *config.Config, daemon events.EventPublisher) Model {
	initStyles(cfg.ColorScheme)

	input := textinput.New()
	input.Placeholder = "Rechercher..."
	input.CharLimit = 100
	input.Width = 30

	return Model{
		app:                application,
		keys:               cfg.KeyMappings,
		daemon:             daemon,
		filters:            dashboard.DefaultFilters(),
		interventionFilter: dashboard.FilterAll,
		searchInput:        input,
	}
}

// Init starts the first data load, the periodic refresh, and the daemon
// subscription when a connection exists.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{loadOverview(m.app, m.filters, m.interventionFilter), tick()}
	if m.daemon != nil {
		cmds = append(cmds, startListening(m.daemon))
	}
	return tea.Batch(cmds...)
}

// tableTasks returns the rows currently shown in the task table.
func (m Model) tableTasks() []taskRow {
	if m.overview == nil {
		return nil
	}
	rows := make([]taskRow, 0, len(m.overview.Tasks))
	for i := range m.overview.Tasks {
		t := &m.overview.Tasks[i]
		rows = append(rows, taskRow{
			ID:       t.ID,
			Name:     t.Name,
			Project:  t.ProjectName(),
			Status:   t.Status,
			Priority: t.Priority,
		})
	}
	return rows
}

// taskRow is the flattened table row derived from a task.
type taskRow struct {
	ID       int
	Name     string
	Project  string
	Status   string
	Priority string
}

// clampSelection keeps the cursor inside the current table.
func (m *Model) clampSelection() {
	rows := 0
	if m.overview != nil {
		rows = len(m.overview.Tasks)
	}
	if rows == 0 {
		m.selectedRow = 0
		return
	}
	if m.selectedRow >= rows {
		m.selectedRow = rows - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}
