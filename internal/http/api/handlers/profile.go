package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/vepsplus/fieldops/internal/repo"
	"github.com/vepsplus/fieldops/internal/response"
)

type profileUpdateRequest struct {
	FullName *string `json:"fullName"`
	Email    *string `json:"email"`
	Phone    *string `json:"phone"`
}

// GetProfile returns the caller's own profile.
func (h *Handler) GetProfile(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	view, err := h.profiles.Get(c.Request.Context(), p)
	if err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 200, view, "ok")
}

// UpdateProfile applies a sparse update to the caller's profile, creating
// the row on first write.
func (h *Handler) UpdateProfile(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var req profileUpdateRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		response.Fail(c, 400, "invalid request body")
		return
	}
	view, err := h.profiles.Upsert(c.Request.Context(), p, repo.ProfileUpdateInput{
		FullName: req.FullName,
		Email:    req.Email,
		Phone:    req.Phone,
	})
	if err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 200, view, "profile updated")
}
