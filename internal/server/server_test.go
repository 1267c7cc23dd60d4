package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"suivi/internal/app"
	"suivi/internal/models"
	taskservice "suivi/internal/services/task"
	"suivi/internal/testutil"
)

func setupTestServer(t *testing.T) (*Server, *app.App) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	application := app.New(db)
	srv := New(":0", application, []string{"http://localhost:5173"})
	return srv, application
}

func registerTestUser(t *testing.T, application *app.App, name, email, role string) (*models.User, string) {
	t.Helper()
	ctx := context.Background()

	user, err := application.UserService.Register(ctx, name, email, "secret1", role)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	session, err := application.UserService.StartSession(ctx, user.ID)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	return user, session.Token
}

func doJSON(t *testing.T, srv *Server, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func TestLogin(t *testing.T) {
	srv, application := setupTestServer(t)
	registerTestUser(t, application, "Admin", "admin@example.com", models.RoleAdmin)

	rec := doJSON(t, srv, http.MethodPost, "/api/login", "", LoginRequest{
		Email:    "admin@example.com",
		Password: "secret1",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		User  models.User `json:"user"`
		Token string      `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a session token")
	}
	if resp.User.Email != "admin@example.com" {
		t.Errorf("user email = %q", resp.User.Email)
	}

	// Session cookie is set
	cookies := rec.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == SessionCookie && c.Value == resp.Token {
			found = true
		}
	}
	if !found {
		t.Error("session cookie not set")
	}
}

func TestLoginBadPassword(t *testing.T) {
	srv, application := setupTestServer(t)
	registerTestUser(t, application, "Admin", "admin@example.com", models.RoleAdmin)

	rec := doJSON(t, srv, http.MethodPost, "/api/login", "", LoginRequest{
		Email:    "admin@example.com",
		Password: "wrong-password",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestAuthRequired(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doJSON(t, srv, http.MethodGet, "/api/me", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/me", "not-a-session", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token status = %d, want 401", rec.Code)
	}
}

func TestAdminRequired(t *testing.T) {
	srv, application := setupTestServer(t)
	_, token := registerTestUser(t, application, "Alice", "alice@example.com", models.RoleUser)

	rec := doJSON(t, srv, http.MethodGet, "/api/dashboard", token, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", rec.Code)
	}
}

func TestLogout(t *testing.T) {
	srv, application := setupTestServer(t)
	_, token := registerTestUser(t, application, "Alice", "alice@example.com", models.RoleUser)

	rec := doJSON(t, srv, http.MethodPost, "/api/logout", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rec.Code)
	}

	// The session is gone afterwards
	rec = doJSON(t, srv, http.MethodGet, "/api/me", token, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status after logout = %d, want 401", rec.Code)
	}
}

func TestTaskLifecycleOverAPI(t *testing.T) {
	srv, application := setupTestServer(t)
	_, adminToken := registerTestUser(t, application, "Admin", "admin@example.com", models.RoleAdmin)
	user, userToken := registerTestUser(t, application, "Alice", "alice@example.com", models.RoleUser)

	// Non-admin cannot create tasks
	rec := doJSON(t, srv, http.MethodPost, "/api/tasks", userToken, CreateTaskRequest{Name: "Nope"})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user create status = %d, want 403", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/tasks", adminToken, CreateTaskRequest{
		Name:           "Install fibre",
		Description:    "Rue de la Paix",
		Priority:       "high",
		AssignedUserID: user.ID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var task models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("decode task: %v", err)
	}
	if task.ID == 0 || task.Name != "Install fibre" {
		t.Fatalf("task = %+v", task)
	}

	// Assignee can update the status
	rec = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/api/tasks/%d/status", task.ID), userToken, ChangeStatusRequest{Status: models.StatusInProgress})
	if rec.Code != http.StatusOK {
		t.Fatalf("status change = %d, body = %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, srv, http.MethodGet, fmt.Sprintf("/api/tasks/%d", task.ID), userToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d", rec.Code)
	}
	var fetched models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode task: %v", err)
	}
	if fetched.Status != models.StatusInProgress {
		t.Errorf("status = %q, want %q", fetched.Status, models.StatusInProgress)
	}

	// Missing tasks are 404
	rec = doJSON(t, srv, http.MethodGet, "/api/tasks/9999", userToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing task status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("delete status = %d", rec.Code)
	}
}

func TestCreateTaskValidation(t *testing.T) {
	srv, application := setupTestServer(t)
	_, adminToken := registerTestUser(t, application, "Admin", "admin@example.com", models.RoleAdmin)

	rec := doJSON(t, srv, http.MethodPost, "/api/tasks", adminToken, CreateTaskRequest{Name: ""})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty name status = %d, want 422", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPost, "/api/tasks", adminToken, CreateTaskRequest{Name: "X", Status: "bogus"})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("bad status = %d, want 422", rec.Code)
	}
}

func TestInterventionFlowOverAPI(t *testing.T) {
	srv, application := setupTestServer(t)
	_, adminToken := registerTestUser(t, application, "Admin", "admin@example.com", models.RoleAdmin)
	_, userToken := registerTestUser(t, application, "Alice", "alice@example.com", models.RoleUser)

	rec := doJSON(t, srv, http.MethodPost, "/api/tasks", adminToken, CreateTaskRequest{Name: "Audit"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task status = %d", rec.Code)
	}
	var task models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &task); err != nil {
		t.Fatalf("decode task: %v", err)
	}

	rec = doJSON(t, srv, http.MethodPost, fmt.Sprintf("/api/tasks/%d/interventions", task.ID), userToken, LogInterventionRequest{
		Description: "Remplacement du routeur",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("log intervention status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var intervention models.Intervention
	if err := json.Unmarshal(rec.Body.Bytes(), &intervention); err != nil {
		t.Fatalf("decode intervention: %v", err)
	}
	if intervention.Status != models.InterventionPending {
		t.Errorf("status = %q, want pending", intervention.Status)
	}

	// Review is admin-only
	rec = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/api/interventions/%d/status", intervention.ID), userToken, ReviewInterventionRequest{Status: models.InterventionApproved})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user review status = %d, want 403", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodPatch, fmt.Sprintf("/api/interventions/%d/status", intervention.ID), adminToken, ReviewInterventionRequest{Status: models.InterventionApproved})
	if rec.Code != http.StatusOK {
		t.Fatalf("review status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// The author got a notification about the approval
	rec = doJSON(t, srv, http.MethodGet, "/api/notifications/unread-count", userToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unread count status = %d", rec.Code)
	}
	var count struct {
		Unread int `json:"unread"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &count); err != nil {
		t.Fatalf("decode count: %v", err)
	}
	if count.Unread != 1 {
		t.Errorf("unread = %d, want 1", count.Unread)
	}
}

func TestDashboardEndpoint(t *testing.T) {
	srv, application := setupTestServer(t)
	_, adminToken := registerTestUser(t, application, "Admin", "admin@example.com", models.RoleAdmin)

	rec := doJSON(t, srv, http.MethodPost, "/api/tasks", adminToken, CreateTaskRequest{Name: "Install"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create task status = %d", rec.Code)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/dashboard?status=pending", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var overview struct {
		Filters struct {
			Status string `json:"statusFilter"`
		} `json:"filters"`
		Metrics struct {
			TotalTasks int `json:"totalTasks"`
		} `json:"metrics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &overview); err != nil {
		t.Fatalf("decode overview: %v", err)
	}
	if overview.Filters.Status != "pending" {
		t.Errorf("echoed status filter = %q", overview.Filters.Status)
	}
	if overview.Metrics.TotalTasks != 1 {
		t.Errorf("total tasks = %d, want 1", overview.Metrics.TotalTasks)
	}
}

func TestDashboardInterventionStatusQuery(t *testing.T) {
	srv, application := setupTestServer(t)
	admin, adminToken := registerTestUser(t, application, "Admin", "admin@example.com", models.RoleAdmin)

	ctx := context.Background()
	task, err := application.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		Name:      "Install",
		CreatedBy: admin.ID,
	})
	if err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := application.InterventionService.LogIntervention(ctx, task.ID, admin.ID, "Soudure"); err != nil {
		t.Fatalf("LogIntervention: %v", err)
	}

	var overview struct {
		Interventions []models.InterventionSummary `json:"interventions"`
	}

	// The only intervention is pending, so the approved filter empties
	// the panel.
	rec := doJSON(t, srv, http.MethodGet, "/api/dashboard?interventionStatus=approved", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &overview); err != nil {
		t.Fatalf("decode overview: %v", err)
	}
	if len(overview.Interventions) != 0 {
		t.Errorf("interventions = %+v, want none for approved filter", overview.Interventions)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/dashboard?interventionStatus=pending", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &overview); err != nil {
		t.Fatalf("decode overview: %v", err)
	}
	if len(overview.Interventions) != 1 {
		t.Errorf("interventions = %+v, want the pending summary", overview.Interventions)
	}
}

func TestDashboardExportEndpoint(t *testing.T) {
	srv, application := setupTestServer(t)
	_, adminToken := registerTestUser(t, application, "Admin", "admin@example.com", models.RoleAdmin)

	rec := doJSON(t, srv, http.MethodGet, "/api/dashboard/export?format=csv&tableTime=all", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("content type = %q", got)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "dashboard-export-") {
		t.Errorf("content disposition = %q", cd)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/dashboard/export?format=xml", adminToken, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown format status = %d, want 400", rec.Code)
	}
}

func TestRegisterEndpoint(t *testing.T) {
	srv, _ := setupTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/register", "", RegisterRequest{
		Name:     "Bob",
		Email:    "bob@example.com",
		Password: "secret1",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// Duplicate email conflicts
	rec = doJSON(t, srv, http.MethodPost, "/api/register", "", RegisterRequest{
		Name:     "Bob Again",
		Email:    "bob@example.com",
		Password: "secret1",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register status = %d, want 409", rec.Code)
	}

	// Short passwords fail validation before reaching the service
	rec = doJSON(t, srv, http.MethodPost, "/api/register", "", RegisterRequest{
		Name:     "Carol",
		Email:    "carol@example.com",
		Password: "abc",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("short password status = %d, want 422", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	srv, _ := setupTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want 204", rec.Code)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("allow origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("disallowed origin status = %d, want 403", rec.Code)
	}
}

func TestMyAndObservedTasks(t *testing.T) {
	srv, application := setupTestServer(t)
	admin, adminToken := registerTestUser(t, application, "Admin", "admin@example.com", models.RoleAdmin)
	worker, workerToken := registerTestUser(t, application, "Worker", "worker@example.com", models.RoleUser)

	ctx := context.Background()
	if _, err := application.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		Name:           "Raccordement A",
		AssignedUserID: worker.ID,
		CreatedBy:      admin.ID,
	}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}
	if _, err := application.TaskService.CreateTask(ctx, taskservice.CreateTaskRequest{
		Name:      "Audit B",
		CreatedBy: admin.ID,
	}); err != nil {
		t.Fatalf("CreateTask: %v", err)
	}

	rec := doJSON(t, srv, http.MethodGet, "/api/tasks/mine", workerToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("mine status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var mine []models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &mine); err != nil {
		t.Fatalf("decode mine: %v", err)
	}
	if len(mine) != 1 || mine[0].Name != "Raccordement A" {
		t.Errorf("mine = %+v, want only the assigned task", mine)
	}

	rec = doJSON(t, srv, http.MethodGet, "/api/tasks/observed", adminToken, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("observed status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var observed []models.Task
	if err := json.Unmarshal(rec.Body.Bytes(), &observed); err != nil {
		t.Fatalf("decode observed: %v", err)
	}
	if len(observed) != 2 {
		t.Errorf("observed count = %d, want the admin's created tasks", len(observed))
	}
}
