package handlers

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vepsplus/fieldops/internal/response"
	"github.com/vepsplus/fieldops/internal/security"
)

type loginRequest struct {
	Username string `json:"username"` // Account name, case sensitive.
	Password string `json:"password"` // Plaintext credential, verified against the stored hash.
}

type loginResponse struct {
	UserID   uint64 `json:"userId"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Token    string `json:"token"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Login verifies credentials and issues a bearer token. Unknown usernames
// and wrong passwords produce the same response.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		response.Fail(c, 400, "invalid request body")
		return
	}
	user, err := h.users.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		failRepo(c, err)
		return
	}
	token, errSign := security.IssueToken(h.cfg.JWT.Secret, h.cfg.JWT.Expiry, user.ID, user.Username, user.Role)
	if errSign != nil {
		log.WithError(errSign).Error("issue token")
		response.Fail(c, 500, "internal error")
		return
	}
	response.OK(c, 200, loginResponse{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Token:    token,
	}, "authenticated")
}

// ChangePassword rotates the caller's own password after verifying the
// current one.
func (h *Handler) ChangePassword(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var req changePasswordRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		response.Fail(c, 400, "invalid request body")
		return
	}
	if err := h.users.ChangePassword(c.Request.Context(), p, req.CurrentPassword, req.NewPassword); err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 200, nil, "password changed")
}
