package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timaocord/wallet-backend/internal/services"
)

// NotificationHandler handles notification related HTTP requests
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notificationService services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		notificationService: notificationService,
	}
}

// GetNotifications handles GET /notifications
func (h *NotificationHandler) GetNotifications(c *gin.Context) {
	notifications, err := h.notificationService.GetForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "notifications": notifications})
}

// MarkAllRead handles POST /notifications/read-all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notificationService.MarkAllRead(c.Request.Context(), currentUserID(c)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
