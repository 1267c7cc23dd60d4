// Package app wires the repository, the event client, and every service
// into a single container the CLI, server, and TUI all share.
package app

import (
	"database/sql"

	"suivi/internal/database"
	"suivi/internal/events"
	dashboardservice "suivi/internal/services/dashboard"
	interventionservice "suivi/internal/services/intervention"
	notificationservice "suivi/internal/services/notification"
	projectservice "suivi/internal/services/project"
	taskservice "suivi/internal/services/task"
	userservice "suivi/internal/services/user"
)

// App holds all application services and provides dependency injection.
type App struct {
	repo        *database.Repository
	eventClient events.EventPublisher

	TaskService         taskservice.Service
	ProjectService      projectservice.Service
	InterventionService interventionservice.Service
	NotificationService notificationservice.Service
	UserService         userservice.Service
	DashboardService    dashboardservice.Service
}

// New creates the application container. Without WithEventPublisher the
// services run with live updates disabled.
func New(db *sql.DB, opts ...Option) *App {
	cfg := &appConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	repo := database.NewRepository(db)

	return &App{
		repo:                repo,
		eventClient:         cfg.eventClient,
		TaskService:         taskservice.NewService(repo, cfg.eventClient),
		ProjectService:      projectservice.NewService(repo),
		InterventionService: interventionservice.NewService(repo, cfg.eventClient),
		NotificationService: notificationservice.NewService(repo, cfg.eventClient),
		UserService:         userservice.NewService(repo),
		DashboardService:    dashboardservice.NewService(repo),
	}
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() *database.Repository {
	return a.repo
}

// Close releases the event connection if one was attached.
func (a *App) Close() error {
	if a.eventClient != nil {
		return a.eventClient.Close()
	}
	return nil
}
