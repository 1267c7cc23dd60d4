package server

import "net/http"

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := s.app.ProjectService.ListProjects(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, projects)
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	var req ProjectRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	project, err := s.app.ProjectService.CreateProject(r.Context(), req.Name, req.Description)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusCreated, project)
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ProjectRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if err := s.app.ProjectService.UpdateProject(r.Context(), id, req.Name, req.Description); err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.app.ProjectService.DeleteProject(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r)
	if !ok {
		return
	}

	products, err := s.app.ProjectService.ListProducts(r.Context(), projectID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, products)
}

func (s *Server) handleAddProduct(w http.ResponseWriter, r *http.Request) {
	projectID, ok := pathID(w, r)
	if !ok {
		return
	}

	var req AddProductRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	product, err := s.app.ProjectService.AddProduct(r.Context(), projectID, req.Name)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusCreated, product)
}

func (s *Server) handleRemoveProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.app.ProjectService.RemoveProduct(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, map[string]bool{"success": true})
}
