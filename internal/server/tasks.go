package server

import (
	"net/http"
	"strconv"
	"time"

	taskservice "suivi/internal/services/task"
)

const dueDateLayout = "2006-01-02"

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	// Paginated when page is given, full snapshot otherwise
	if pageStr := q.Get("page"); pageStr != "" {
		page, _ := strconv.Atoi(pageStr)
		perPage, _ := strconv.Atoi(q.Get("perPage"))

		result, err := s.app.TaskService.ListTaskPage(r.Context(), page, perPage)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeAPIJSON(w, http.StatusOK, result)
		return
	}

	tasks, err := s.app.TaskService.ListTasks(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleMyTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.app.TaskService.ListMyTasks(r.Context(), currentUser(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleObservedTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.app.TaskService.ListObservedTasks(r.Context(), currentUser(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, tasks)
}

func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	task, err := s.app.TaskService.GetTask(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, task)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req CreateTaskRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse(dueDateLayout, req.DueDate)
		if err != nil {
			writeAPIError(w, http.StatusUnprocessableEntity, "invalid due date")
			return
		}
		dueDate = &parsed
	}

	task, err := s.app.TaskService.CreateTask(r.Context(), taskservice.CreateTaskRequest{
		Name:           req.Name,
		Description:    req.Description,
		Status:         req.Status,
		Priority:       req.Priority,
		DueDate:        dueDate,
		AssignedUserID: req.AssignedUserID,
		CreatedBy:      currentUser(r).ID,
		ProductIDs:     req.ProductIDs,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeAPIJSON(w, http.StatusCreated, task)
}

func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	update := taskservice.UpdateTaskRequest{
		TaskID:      id,
		ActorID:     currentUser(r).ID,
		Name:        req.Name,
		Description: req.Description,
		Priority:    req.Priority,
	}

	if req.DueDate != nil {
		if *req.DueDate == "" {
			var cleared *time.Time
			update.DueDate = &cleared
		} else {
			parsed, err := time.Parse(dueDateLayout, *req.DueDate)
			if err != nil {
				writeAPIError(w, http.StatusUnprocessableEntity, "invalid due date")
				return
			}
			due := &parsed
			update.DueDate = &due
		}
	}

	if err := s.app.TaskService.UpdateTask(r.Context(), update); err != nil {
		writeServiceError(w, err)
		return
	}

	task, err := s.app.TaskService.GetTask(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, task)
}

func (s *Server) handleChangeTaskStatus(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req ChangeStatusRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if err := s.app.TaskService.ChangeStatus(r.Context(), id, req.Status, currentUser(r).ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleAssignTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req AssignTaskRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if err := s.app.TaskService.AssignTask(r.Context(), id, req.UserID, currentUser(r).ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleSetTaskProducts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req SetProductsRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	if err := s.app.TaskService.SetProducts(r.Context(), id, req.ProductIDs); err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := s.app.TaskService.DeleteTask(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, map[string]bool{"success": true})
}
