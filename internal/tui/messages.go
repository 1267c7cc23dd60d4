package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/spf13/afero"

	"suivi/internal/app"
	"suivi/internal/dashboard"
	"suivi/internal/events"
	dashboardservice "suivi/internal/services/dashboard"
)

// refreshInterval is how often the dashboard reloads on its own.
const refreshInterval = 30 * time.Second

type overviewMsg struct {
	overview *dashboardservice.Overview
}

type errMsg struct {
	err error
}

type tickMsg time.Time

type exportDoneMsg struct {
	filename string
}

// eventsChanMsg delivers the daemon's event channel once listening starts.
type eventsChanMsg struct {
	ch <-chan events.Event
}

// dataChangedMsg signals that the daemon reported a data change.
type dataChangedMsg struct{}

// eventsClosedMsg signals that the daemon connection is gone for good.
type eventsClosedMsg struct{}

// loadOverview fetches a fresh dashboard snapshot with the given filters.
func loadOverview(application *app.App, filters dashboard.FilterState, interventionStatus string) tea.Cmd {
	return func() tea.Msg {
		overview, err := application.DashboardService.Overview(context.Background(), filters, interventionStatus, 0)
		if err != nil {
			return errMsg{err: err}
		}
		return overviewMsg{overview: overview}
	}
}

// startListening opens the daemon's event stream. On failure the
// dashboard falls back to the periodic refresh.
func startListening(daemon events.EventPublisher) tea.Cmd {
	return func() tea.Msg {
		ch, err := daemon.Listen(context.Background())
		if err != nil {
			return eventsClosedMsg{}
		}
		return eventsChanMsg{ch: ch}
	}
}

// waitForEvent blocks on the event stream until the daemon reports a
// change or the stream closes.
func waitForEvent(ch <-chan events.Event) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return eventsClosedMsg{}
		}
		return dataChangedMsg{}
	}
}

// exportDashboard writes the filtered table to disk in the given format.
func exportDashboard(application *app.App, filters dashboard.FilterState, format string) tea.Cmd {
	return func() tea.Msg {
		result, err := application.DashboardService.Export(context.Background(), filters, format)
		if err != nil {
			return errMsg{err: err}
		}
		fs := afero.NewOsFs()
		if err := afero.WriteFile(fs, result.Filename, result.Data, 0o644); err != nil {
			return errMsg{err: err}
		}
		return exportDoneMsg{filename: result.Filename}
	}
}

func tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
