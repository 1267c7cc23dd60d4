package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"suivi/internal/dashboard"
	"suivi/internal/models"
	userservice "suivi/internal/services/user"
)

// decodeJSON parses and validates a request payload.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeAPIError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	if err := s.validate.Struct(dst); err != nil {
		writeAPIError(w, http.StatusUnprocessableEntity, err.Error())
		return false
	}
	return true
}

// pathID parses the {id} path segment as a positive integer.
func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		writeAPIError(w, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	user, err := s.app.UserService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, userservice.ErrInvalidCredentials) {
			writeAPIError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		writeServiceError(w, err)
		return
	}

	session, err := s.app.UserService.StartSession(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeAPIJSON(w, http.StatusOK, map[string]any{
		"user":  user,
		"token": session.Token,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if token := sessionToken(r); token != "" {
		if err := s.app.UserService.EndSession(r.Context(), token); err != nil && !errors.Is(err, models.ErrNotFound) {
			writeServiceError(w, err)
			return
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	writeAPIJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeAPIJSON(w, http.StatusOK, currentUser(r))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	user, err := s.app.UserService.Register(r.Context(), req.Name, req.Email, req.Password, models.RoleUser)
	if err != nil {
		if errors.Is(err, userservice.ErrEmailTaken) {
			writeAPIError(w, http.StatusConflict, err.Error())
			return
		}
		writeServiceError(w, err)
		return
	}

	writeAPIJSON(w, http.StatusCreated, user)
}

// filtersFromQuery builds the dashboard filter state from query
// parameters; missing parameters fall back to their defaults.
func filtersFromQuery(r *http.Request) dashboard.FilterState {
	q := r.URL.Query()
	f := dashboard.DefaultFilters()

	if v := q.Get("search"); v != "" {
		f.Search = v
	}
	if v := q.Get("status"); v != "" {
		f.Status = v
	}
	if v := q.Get("project"); v != "" {
		f.Project = v
	}
	if v := q.Get("timeRange"); v != "" {
		f.TimeRange = v
	}
	if v := q.Get("tableTime"); v != "" {
		f.TableTime = v
	}

	return f
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	interventionStatus := r.URL.Query().Get("interventionStatus")
	if interventionStatus == "" {
		interventionStatus = dashboard.FilterAll
	}

	overview, err := s.app.DashboardService.Overview(r.Context(), filtersFromQuery(r), interventionStatus, currentUser(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, overview)
}

func (s *Server) handleDashboardExport(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = dashboard.FormatJSON
	}

	result, err := s.app.DashboardService.Export(r.Context(), filtersFromQuery(r), format)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			writeServiceError(w, err)
			return
		}
		writeAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", result.MIME)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	_, _ = w.Write(result.Data)
}

func (s *Server) handleUserDashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	overview, err := s.app.DashboardService.UserOverview(r.Context(), currentUser(r).ID, q.Get("search"), q.Get("status"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, overview)
}
