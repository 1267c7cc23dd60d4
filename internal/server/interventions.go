package server

import "net/http"

func (s *Server) handleListInterventions(w http.ResponseWriter, r *http.Request) {
	interventions, err := s.app.InterventionService.ListInterventions(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, interventions)
}

func (s *Server) handleListTaskInterventions(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r)
	if !ok {
		return
	}

	interventions, err := s.app.InterventionService.ListByTask(r.Context(), taskID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, interventions)
}

func (s *Server) handleLogIntervention(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req LogInterventionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	intervention, err := s.app.InterventionService.LogIntervention(r.Context(), taskID, currentUser(r).ID, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusCreated, intervention)
}

func (s *Server) handleReviewIntervention(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ReviewInterventionRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if err := s.app.InterventionService.Review(r.Context(), id, req.Status, currentUser(r).ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleDeleteIntervention(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.app.InterventionService.DeleteIntervention(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, map[string]bool{"success": true})
}
