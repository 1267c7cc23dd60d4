// Package dashboard assembles the admin and user dashboard views from
// live data: it loads snapshots through the repository and runs the pure
// computations over them.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"suivi/internal/dashboard"
	"suivi/internal/database"
	"suivi/internal/models"
)

// Overview is the full admin dashboard payload.
type Overview struct {
	Filters       dashboard.FilterState        `json:"filters"`
	Metrics       dashboard.Metrics            `json:"metrics"`
	StatCards     []dashboard.StatCard         `json:"statCards"`
	GroupedData   []dashboard.StatusCount      `json:"groupedData,omitempty"`
	Projects      []string                     `json:"projects"`
	Tasks         []models.Task                `json:"tasks"`
	Interventions []models.InterventionSummary `json:"interventions"`
}

// UserOverview is the per-user dashboard payload.
type UserOverview struct {
	MyTasks             []models.Task           `json:"myTasks"`
	ObservedTasks       []models.Task           `json:"observedTasks"`
	Pending             int                     `json:"pending"`
	InProgress          int                     `json:"inProgress"`
	Completed           int                     `json:"completed"`
	Distribution        []dashboard.StatusCount `json:"distribution"`
	RecentNotifications []models.Notification   `json:"recentNotifications"`
}

// recentNotificationLimit caps the notification widget on the user
// dashboard.
const recentNotificationLimit = 3

// ExportResult carries a serialized export plus its download metadata.
type ExportResult struct {
	Data     []byte
	Filename string
	MIME     string
}

// Service defines the dashboard assembly operations
type Service interface {
	Overview(ctx context.Context, f dashboard.FilterState, interventionStatus string, currentUserID int) (*Overview, error)
	UserOverview(ctx context.Context, userID int, search, status string) (*UserOverview, error)
	Export(ctx context.Context, f dashboard.FilterState, format string) (*ExportResult, error)
}

// service implements Service interface
type service struct {
	repo database.DataStore
	now  func() time.Time
}

// NewService creates a new dashboard service
func NewService(repo database.DataStore) Service {
	return &service{
		repo: repo,
		now:  time.Now,
	}
}

// Overview loads a full task snapshot, applies the filters, and computes
// every widget of the admin dashboard. Metrics, stat cards and the
// grouped chart all run over the filtered collection; only the table
// additionally honors the time window. The project list stays global so
// the project filter can always be widened again.
func (s *service) Overview(ctx context.Context, f dashboard.FilterState, interventionStatus string, currentUserID int) (*Overview, error) {
	f = f.Normalize()

	tasks, err := s.repo.ListTasksSince(ctx, sinceForRange(f.TimeRange, s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	summaries, err := s.repo.SummarizeInterventionsByProject(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load interventions: %w", err)
	}

	filtered := f.Apply(tasks)
	table := dashboard.FilterByWindow(filtered, f.TableTime, s.now())

	return &Overview{
		Filters:       f,
		Metrics:       dashboard.ComputeMetrics(filtered, currentUserID),
		StatCards:     dashboard.StatCards(filtered, currentUserID),
		GroupedData:   dashboard.GroupedStatusData(filtered, f),
		Projects:      dashboard.Projects(tasks),
		Tasks:         table,
		Interventions: dashboard.FilterInterventions(summaries, f.Search, f.Project, interventionStatus),
	}, nil
}

// UserOverview loads one user's assigned and observed tasks and computes
// the personal dashboard widgets.
func (s *service) UserOverview(ctx context.Context, userID int, search, status string) (*UserOverview, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}

	mine, err := s.repo.ListTasksByAssignee(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assigned tasks: %w", err)
	}
	observed, err := s.repo.ListObservedTasks(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load observed tasks: %w", err)
	}

	notifications, err := s.repo.ListNotificationsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load notifications: %w", err)
	}
	if len(notifications) > recentNotificationLimit {
		notifications = notifications[:recentNotificationLimit]
	}

	pending, inProgress, completed := dashboard.MyStatusCounts(mine, userID)

	return &UserOverview{
		MyTasks:             dashboard.FilterActiveTasks(mine, search, status),
		ObservedTasks:       observed,
		Pending:             pending,
		InProgress:          inProgress,
		Completed:           completed,
		Distribution:        dashboard.DistributionData(pending, inProgress, completed),
		RecentNotifications: notifications,
	}, nil
}

// Export serializes the filtered task list in the requested format. The
// table's time window is a display concern and does not narrow exports;
// an export with default filters covers the full collection.
func (s *service) Export(ctx context.Context, f dashboard.FilterState, format string) (*ExportResult, error) {
	f = f.Normalize()

	tasks, err := s.repo.ListTasksSince(ctx, sinceForRange(f.TimeRange, s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to load tasks: %w", err)
	}

	now := s.now()
	filtered := f.Apply(tasks)

	data, err := dashboard.Export(filtered, format, now)
	if err != nil {
		return nil, err
	}

	return &ExportResult{
		Data:     data,
		Filename: dashboard.ExportFilename(format, now),
		MIME:     dashboard.ExportMIME(format),
	}, nil
}

// sinceForRange interprets the opaque time-range token as a creation
// cutoff. Unknown tokens fall back to no cutoff so a stale client keeps
// working.
func sinceForRange(timeRange string, now time.Time) time.Time {
	switch timeRange {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "this-week":
		return now.AddDate(0, 0, -7)
	case "this-month":
		return now.AddDate(0, -1, 0)
	default:
		return time.Time{}
	}
}
