package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"suivi/internal/dashboard"
	"suivi/internal/models"
)

// statusCycle is the order the status filter steps through.
var statusCycle = []string{
	dashboard.FilterAll,
	models.StatusPending,
	models.StatusInProgress,
	models.StatusCompleted,
}

// timeRangeCycle is the order the creation-range filter steps through.
var timeRangeCycle = []string{
	dashboard.FilterAll,
	"today",
	"this-week",
	"this-month",
}

// interventionCycle is the order the intervention panel filter steps
// through.
var interventionCycle = []string{
	dashboard.FilterAll,
	dashboard.InterventionFilterPending,
	dashboard.InterventionFilterApproved,
	dashboard.InterventionFilterRejected,
}

// Update handles all Bubble Tea messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case overviewMsg:
		m.overview = msg.overview
		m.err = nil
		m.clampSelection()
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case exportDoneMsg:
		m.statusMsg = "Export écrit: " + msg.filename
		return m, nil

	case tickMsg:
		return m, tea.Batch(loadOverview(m.app, m.filters, m.interventionFilter), tick())

	case eventsChanMsg:
		m.eventCh = msg.ch
		return m, waitForEvent(m.eventCh)

	case dataChangedMsg:
		return m, tea.Batch(loadOverview(m.app, m.filters, m.interventionFilter), waitForEvent(m.eventCh))

	case eventsClosedMsg:
		// Live updates gone; the periodic tick keeps refreshing.
		m.eventCh = nil
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

// updateSearch routes keys to the search input until enter or esc.
func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searching = false
		m.searchInput.Blur()
		m.filters.Search = m.searchInput.Value()
		m.selectedRow = 0
		return m, loadOverview(m.app, m.filters, m.interventionFilter)
	case "esc":
		m.searching = false
		m.searchInput.Blur()
		m.searchInput.SetValue(m.filters.Search)
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.statusMsg = ""

	switch key {
	case "ctrl+c", m.keys.Quit:
		return m, tea.Quit

	case m.keys.ShowHelp:
		m.showHelp = !m.showHelp
		return m, nil

	case m.keys.FocusSearch:
		m.searching = true
		m.searchInput.Focus()
		return m, nil

	case m.keys.CycleStatus:
		m.filters.Status = nextIn(statusCycle, m.filters.Status)
		m.selectedRow = 0
		return m, loadOverview(m.app, m.filters, m.interventionFilter)

	case m.keys.CycleProject:
		m.filters.Project = m.nextProject()
		m.selectedRow = 0
		return m, loadOverview(m.app, m.filters, m.interventionFilter)

	case m.keys.CycleTimeRange:
		m.filters.TimeRange = nextIn(timeRangeCycle, m.filters.TimeRange)
		m.selectedRow = 0
		return m, loadOverview(m.app, m.filters, m.interventionFilter)

	case m.keys.CycleIntervention:
		m.interventionFilter = nextIn(interventionCycle, m.interventionFilter)
		return m, loadOverview(m.app, m.filters, m.interventionFilter)

	case m.keys.ToggleWindow:
		if m.filters.TableTime == dashboard.WindowToday {
			m.filters.TableTime = dashboard.WindowAll
		} else {
			m.filters.TableTime = dashboard.WindowToday
		}
		m.selectedRow = 0
		return m, loadOverview(m.app, m.filters, m.interventionFilter)

	case m.keys.ClearFilters:
		m.filters = dashboard.DefaultFilters()
		m.interventionFilter = dashboard.FilterAll
		m.searchInput.SetValue("")
		m.selectedRow = 0
		return m, loadOverview(m.app, m.filters, m.interventionFilter)

	case m.keys.Refresh:
		return m, loadOverview(m.app, m.filters, m.interventionFilter)

	case m.keys.NextRow:
		m.selectedRow++
		m.clampSelection()
		return m, nil

	case m.keys.PrevRow:
		m.selectedRow--
		m.clampSelection()
		return m, nil

	case m.keys.NextPane, m.keys.PrevPane:
		if m.activePane == paneTable {
			m.activePane = paneInterventions
		} else {
			m.activePane = paneTable
		}
		return m, nil

	case m.keys.ExportJSON:
		return m, exportDashboard(m.app, m.filters, dashboard.FormatJSON)

	case m.keys.ExportCSV:
		return m, exportDashboard(m.app, m.filters, dashboard.FormatCSV)
	}

	return m, nil
}

// nextIn advances cur one step through cycle, wrapping at the end.
// An unknown value restarts the cycle.
func nextIn(cycle []string, cur string) string {
	for i, v := range cycle {
		if v == cur {
			return cycle[(i+1)%len(cycle)]
		}
	}
	return cycle[0]
}

// nextProject cycles all -> first project -> ... -> last -> all, using
// the project list of the last loaded snapshot.
func (m Model) nextProject() string {
	if m.overview == nil || len(m.overview.Projects) == 0 {
		return dashboard.FilterAll
	}
	if m.filters.Project == dashboard.FilterAll {
		return m.overview.Projects[0]
	}
	for i, name := range m.overview.Projects {
		if name == m.filters.Project {
			if i+1 < len(m.overview.Projects) {
				return m.overview.Projects[i+1]
			}
			return dashboard.FilterAll
		}
	}
	return dashboard.FilterAll
}
