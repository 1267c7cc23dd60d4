// Package cli holds the shared plumbing for the suivi command line:
// the application context, output formatting, and exit codes.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"suivi/internal/app"
	"suivi/internal/config"
	"suivi/internal/database"
	"suivi/internal/events"
)

// CLI represents the CLI application context
type CLI struct {
	App         *app.App
	Config      *config.Config
	eventClient events.EventPublisher
}

// NewCLI initializes the CLI with database and optional daemon connection
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	dbPath := cfg.Database.Path
	if dbPath == "" {
		dbPath, err = database.DefaultPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve database path: %w", err)
		}
	}

	db, err := database.InitDB(ctx, dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Daemon connection is optional, commands degrade to no live updates
	var eventClient events.EventPublisher
	home, _ := os.UserHomeDir()
	socketPath := filepath.Join(home, ".suivi", "suivi.sock")
	if client, err := events.NewClient(socketPath); err == nil {
		if err := client.Connect(ctx); err == nil {
			eventClient = client
		}
	}

	var opts []app.Option
	if eventClient != nil {
		opts = append(opts, app.WithEventPublisher(eventClient))
	}

	return &CLI{
		App:         app.New(db, opts...),
		Config:      cfg,
		eventClient: eventClient,
	}, nil
}

// Events returns the daemon connection, or nil when running without one.
func (c *CLI) Events() events.EventPublisher {
	return c.eventClient
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	return c.App.Close()
}

type appContextKey struct{}

// WithApp injects a prebuilt application into a context. Tests use this
// to point commands at an in-memory database instead of the user's.
func WithApp(ctx context.Context, application *app.App) context.Context {
	return context.WithValue(ctx, appContextKey{}, application)
}

// GetCLIFromContext resolves the CLI for a command invocation: an injected
// app when one is present on the context, otherwise a fresh CLI backed by
// the configured database.
func GetCLIFromContext(ctx context.Context) (*CLI, error) {
	if application, ok := ctx.Value(appContextKey{}).(*app.App); ok && application != nil {
		return &CLI{App: application, Config: config.Default()}, nil
	}
	return NewCLI(ctx)
}
