package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vepsplus/fieldops/internal/repo"
	"github.com/vepsplus/fieldops/internal/response"
)

type settingsUpdateRequest struct {
	DarkTheme         bool    `json:"darkTheme"`
	PushNotifications bool    `json:"pushNotifications"`
	Language          *string `json:"language"`
}

// GetSettings returns the caller's settings, falling back to defaults when
// none were saved yet.
func (h *Handler) GetSettings(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	view, err := h.settings.Get(c.Request.Context(), p)
	if err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 200, view, "ok")
}

// UpdateSettings saves the caller's settings, creating the row on first write.
func (h *Handler) UpdateSettings(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var req settingsUpdateRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		response.Fail(c, 400, "invalid request body")
		return
	}
	view, err := h.settings.Upsert(c.Request.Context(), p, repo.SettingsUpdateInput{
		DarkTheme:         req.DarkTheme,
		PushNotifications: req.PushNotifications,
		Language:          req.Language,
	})
	if err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 200, view, "settings updated")
}
