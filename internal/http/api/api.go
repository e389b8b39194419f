// Package api registers the HTTP routes of the field operations service
// and provides the bearer-token middleware guarding them.
package api

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/vepsplus/fieldops/internal/config"
	"github.com/vepsplus/fieldops/internal/http/api/handlers"
	"github.com/vepsplus/fieldops/internal/notify"
	"github.com/vepsplus/fieldops/internal/response"
	"github.com/vepsplus/fieldops/internal/security"
)

// RegisterRoutes mounts every API endpoint on the given engine. All routes
// except login and the health probe require a valid bearer token.
func RegisterRoutes(r *gin.Engine, conn *gorm.DB, cfg *config.AppConfig, publisher notify.Publisher) {
	h := handlers.New(conn, cfg, publisher)

	r.GET("/healthz", h.Healthz)

	r.POST("/auth/login", h.Login)

	authed := r.Group("")
	authed.Use(authMiddleware(cfg.JWT.Secret))
	{
		authed.POST("/auth/change-password", h.ChangePassword)

		authed.GET("/timesheets", h.ListTimesheets)
		authed.POST("/timesheets", h.CreateTimesheet)
		authed.PATCH("/timesheets/:id", h.UpdateTimesheetStatus)

		authed.GET("/fuel", h.ListFuel)
		authed.POST("/fuel", h.CreateFuel)
		authed.PATCH("/fuel/:id", h.UpdateFuel)
		authed.DELETE("/fuel/:id", h.DeleteFuel)

		authed.GET("/profile", h.GetProfile)
		authed.PUT("/profile", h.UpdateProfile)

		authed.GET("/settings", h.GetSettings)
		authed.PUT("/settings", h.UpdateSettings)

		authed.GET("/notifications", h.ListNotifications)
		authed.PATCH("/notifications/:id", h.MarkNotificationRead)

		authed.GET("/dashboard", h.Dashboard)

		authed.GET("/references/fueltypes", h.FuelTypes)
		authed.GET("/references/carmodels", h.CarModels)
		authed.GET("/references/projects", h.Projects)
		authed.GET("/references/workers", h.Workers)
		authed.GET("/references/statuses", h.Statuses)

		authed.GET("/users/:id", h.GetUser)
	}
}

// authMiddleware validates the Authorization bearer token and stores the
// caller's identity in the request context. Validity is purely cryptographic:
// no session store is consulted.
func authMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == "" || token == header {
			response.AbortFail(c, 401, "not authenticated")
			return
		}
		claims, err := security.ParseToken(secret, token)
		if err != nil {
			response.AbortFail(c, 401, "not authenticated")
			return
		}
		c.Set(handlers.ContextUserID, claims.UserID)
		c.Set(handlers.ContextUsername, claims.Username)
		c.Set(handlers.ContextRole, claims.Role)
		c.Next()
	}
}
