package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vepsplus/fieldops/internal/response"
)

// ListNotifications returns the caller's notifications, newest first.
func (h *Handler) ListNotifications(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	views, err := h.notifications.List(c.Request.Context(), p)
	if err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 200, views, "ok")
}

// MarkNotificationRead marks one of the caller's notifications as read.
// Repeating the call is a no-op.
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.notifications.MarkRead(c.Request.Context(), p, id); err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 200, nil, "notification read")
}
