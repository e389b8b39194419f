package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vepsplus/fieldops/internal/response"
)

// Dashboard returns the caller's aggregate totals for the home screen.
func (h *Handler) Dashboard(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	view, err := h.dashboard.Summarize(c.Request.Context(), p)
	if err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 200, view, "ok")
}
