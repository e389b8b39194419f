package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vepsplus/fieldops/internal/response"
)

// GetUser returns a user's account data. Callers can only fetch their own
// account; any other id reads as not found.
func (h *Handler) GetUser(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	view, err := h.users.Get(c.Request.Context(), p, id)
	if err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 200, view, "ok")
}
