package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vepsplus/fieldops/internal/models"
	"github.com/vepsplus/fieldops/internal/response"
	"github.com/vepsplus/fieldops/internal/roles"
)

// FuelTypes lists the known fuel types with their unit prices.
func (h *Handler) FuelTypes(c *gin.Context) {
	entries, err := h.refs.FuelTypes(c.Request.Context())
	if err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 200, entries, "ok")
}

// CarModels lists the known car models.
func (h *Handler) CarModels(c *gin.Context) {
	h.stringReference(c, models.ReferenceKeyCarModels)
}

// Projects lists the known projects.
func (h *Handler) Projects(c *gin.Context) {
	h.stringReference(c, models.ReferenceKeyProjects)
}

// Statuses lists the timesheet statuses.
func (h *Handler) Statuses(c *gin.Context) {
	h.stringReference(c, models.ReferenceKeyStatuses)
}

// Workers lists the display names of all registered users. Restricted to
// supervisor-level callers.
func (h *Handler) Workers(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	if !roles.HasPermission(p.Role, roles.Boss) {
		response.Fail(c, 403, "forbidden")
		return
	}
	names, err := h.refs.Workers(c.Request.Context())
	if err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 200, names, "ok")
}

func (h *Handler) stringReference(c *gin.Context, key string) {
	values, err := h.refs.StringList(c.Request.Context(), key)
	if err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 200, values, "ok")
}
