package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/caresync/hms-api/internal/service/notification"
	"github.com/caresync/hms-api/pkg/logger"
)

type NotificationHandler struct {
	notifSvc *notification.Service
	logger   *logger.Logger
}

func NewNotificationHandler(notifSvc *notification.Service, log *logger.Logger) *NotificationHandler {
	return &NotificationHandler{notifSvc: notifSvc, logger: log}
}

func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.notifSvc.List(c.Request.Context(), viewer(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	count, err := h.notifSvc.UnreadCount(c.Request.Context(), viewer(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread_count": count})
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.notifSvc.MarkRead(c.Request.Context(), viewer(c), id); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked read"})
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	if err := h.notifSvc.MarkAllRead(c.Request.Context(), viewer(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked read"})
}
