package server

import "net/http"

// registerRoutes sets up all API endpoints
func (s *Server) registerRoutes() http.Handler {
	mux := http.NewServeMux()

	// Session
	mux.HandleFunc("POST /api/login", s.handleLogin)
	mux.HandleFunc("POST /api/logout", s.requireAuth(s.handleLogout))
	mux.HandleFunc("GET /api/me", s.requireAuth(s.handleMe))

	// Dashboards
	mux.HandleFunc("GET /api/dashboard", s.requireAdmin(s.handleDashboard))
	mux.HandleFunc("GET /api/dashboard/export", s.requireAdmin(s.handleDashboardExport))
	mux.HandleFunc("GET /api/my-dashboard", s.requireAuth(s.handleUserDashboard))

	// Tasks
	mux.HandleFunc("GET /api/tasks", s.requireAuth(s.handleListTasks))
	mux.HandleFunc("POST /api/tasks", s.requireAdmin(s.handleCreateTask))
	mux.HandleFunc("GET /api/tasks/mine", s.requireAuth(s.handleMyTasks))
	mux.HandleFunc("GET /api/tasks/observed", s.requireAuth(s.handleObservedTasks))
	mux.HandleFunc("GET /api/tasks/{id}", s.requireAuth(s.handleGetTask))
	mux.HandleFunc("PATCH /api/tasks/{id}", s.requireAdmin(s.handleUpdateTask))
	mux.HandleFunc("PATCH /api/tasks/{id}/status", s.requireAuth(s.handleChangeTaskStatus))
	mux.HandleFunc("PATCH /api/tasks/{id}/assignee", s.requireAdmin(s.handleAssignTask))
	mux.HandleFunc("PUT /api/tasks/{id}/products", s.requireAdmin(s.handleSetTaskProducts))
	mux.HandleFunc("DELETE /api/tasks/{id}", s.requireAdmin(s.handleDeleteTask))

	// Interventions
	mux.HandleFunc("GET /api/tasks/{id}/interventions", s.requireAuth(s.handleListTaskInterventions))
	mux.HandleFunc("POST /api/tasks/{id}/interventions", s.requireAuth(s.handleLogIntervention))
	mux.HandleFunc("GET /api/interventions", s.requireAdmin(s.handleListInterventions))
	mux.HandleFunc("PATCH /api/interventions/{id}/status", s.requireAdmin(s.handleReviewIntervention))
	mux.HandleFunc("DELETE /api/interventions/{id}", s.requireAdmin(s.handleDeleteIntervention))

	// Notifications
	mux.HandleFunc("GET /api/notifications", s.requireAuth(s.handleListNotifications))
	mux.HandleFunc("GET /api/notifications/unread-count", s.requireAuth(s.handleUnreadCount))
	mux.HandleFunc("PATCH /api/notifications/{id}/read", s.requireAuth(s.handleMarkNotificationRead))
	mux.HandleFunc("POST /api/notifications/read-all", s.requireAuth(s.handleMarkAllNotificationsRead))
	mux.HandleFunc("DELETE /api/notifications", s.requireAuth(s.handleClearNotifications))

	// Projects and products
	mux.HandleFunc("GET /api/projects", s.requireAuth(s.handleListProjects))
	mux.HandleFunc("POST /api/projects", s.requireAdmin(s.handleCreateProject))
	mux.HandleFunc("PATCH /api/projects/{id}", s.requireAdmin(s.handleUpdateProject))
	mux.HandleFunc("DELETE /api/projects/{id}", s.requireAdmin(s.handleDeleteProject))
	mux.HandleFunc("GET /api/projects/{id}/products", s.requireAuth(s.handleListProducts))
	mux.HandleFunc("POST /api/projects/{id}/products", s.requireAdmin(s.handleAddProduct))
	mux.HandleFunc("DELETE /api/products/{id}", s.requireAdmin(s.handleRemoveProduct))

	// Accounts
	mux.HandleFunc("POST /api/register", s.handleRegister)
	mux.HandleFunc("GET /api/users", s.requireAdmin(s.handleListUsers))
	mux.HandleFunc("PATCH /api/users/{id}/role", s.requireAdmin(s.handleToggleUserRole))
	mux.HandleFunc("DELETE /api/users/{id}", s.requireAdmin(s.handleDeleteUser))

	return s.corsMiddleware(mux)
}
