// Package server exposes the application over a JSON HTTP API: session
// login, the admin and user dashboards, exports, and CRUD for tasks,
// interventions, notifications, projects, and accounts.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-playground/validator/v10"

	"suivi/internal/app"
	"suivi/internal/models"
)

// SessionCookie is the cookie carrying the login session token.
const SessionCookie = "suivi_session"

// Server serves the HTTP API on top of the application container.
type Server struct {
	app      *app.App
	origins  map[string]struct{}
	validate *validator.Validate
	server   *http.Server
}

// New creates a server listening on addr. allowedOrigins lists the
// browser origins permitted to call the API cross-origin.
func New(addr string, application *app.App, allowedOrigins []string) *Server {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	s := &Server{
		app:      application,
		origins:  origins,
		validate: validator.New(),
	}

	s.server = &http.Server{
		Addr:    addr,
		Handler: s.registerRoutes(),
	}

	return s
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}

// Handler returns the root handler, exported for httptest use.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start runs the listener in a goroutine, reporting fatal errors on
// errChan.
func (s *Server) Start(wg *sync.WaitGroup, errChan chan<- error) {
	wg.Add(1)
	go func() {
		defer wg.Done()

		slog.Info("API server listening", "addr", s.server.Addr)
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()
}

// Shutdown stops the listener gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func writeAPIJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeAPIError(w http.ResponseWriter, status int, message string) {
	writeAPIJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps service errors onto HTTP statuses: missing rows
// become 404, validation sentinels 422, everything else 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		writeAPIError(w, http.StatusNotFound, "not found")
	case isValidationError(err):
		writeAPIError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.Error("request failed", "error", err)
		writeAPIError(w, http.StatusInternalServerError, "internal error")
	}
}
