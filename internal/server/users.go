package server

import "net/http"

func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.app.UserService.ListUsers(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, users)
}

func (s *Server) handleToggleUserRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	// Admins cannot demote themselves, someone has to stay in charge
	if currentUser(r).ID == id {
		writeAPIError(w, http.StatusUnprocessableEntity, "cannot change your own role")
		return
	}

	user, err := s.app.UserService.ToggleRole(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, user)
}

func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if currentUser(r).ID == id {
		writeAPIError(w, http.StatusUnprocessableEntity, "cannot delete your own account")
		return
	}

	if err := s.app.UserService.DeleteUser(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, map[string]bool{"success": true})
}
