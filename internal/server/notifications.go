package server

import "net/http"

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	notifications, err := s.app.NotificationService.ListForUser(r.Context(), currentUser(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, notifications)
}

func (s *Server) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := s.app.NotificationService.UnreadCount(r.Context(), currentUser(r).ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, map[string]int{"unread": count})
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeAPIError(w, http.StatusBadRequest, "invalid id")
		return
	}

	if err := s.app.NotificationService.MarkRead(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleMarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	if err := s.app.NotificationService.MarkAllRead(r.Context(), currentUser(r).ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (s *Server) handleClearNotifications(w http.ResponseWriter, r *http.Request) {
	if err := s.app.NotificationService.ClearAll(r.Context(), currentUser(r).ID); err != nil {
		writeServiceError(w, err)
		return
	}
	writeAPIJSON(w, http.StatusOK, map[string]bool{"success": true})
}
