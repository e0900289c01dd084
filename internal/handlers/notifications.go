package handlers

import (
	"net/http"
	"strconv"

	"pool-market-client/internal/services"

	"github.com/go-chi/chi/v5"
)

// NotificationHandler exposes the notification queue
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// ListNotifications handles GET /api/v1/notifications
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.notifications.List())
}

// RemoveNotification handles DELETE /api/v1/notifications/{index}.
// An index outside the queue is not an error.
func (h *NotificationHandler) RemoveNotification(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, CodeBadRequest, "index must be a number", http.StatusBadRequest)
		return
	}

	h.notifications.Remove(index)
	respondJSON(w, http.StatusOK, h.notifications.List())
}
