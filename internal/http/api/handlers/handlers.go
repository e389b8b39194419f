// Package handlers implements the HTTP handlers of the field operations API.
// Every response uses the uniform envelope from the response package.
package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/vepsplus/fieldops/internal/config"
	dbutil "github.com/vepsplus/fieldops/internal/db"
	"github.com/vepsplus/fieldops/internal/notify"
	"github.com/vepsplus/fieldops/internal/repo"
	"github.com/vepsplus/fieldops/internal/response"
)

// Context keys set by the auth middleware.
const (
	ContextUserID   = "userID"
	ContextUsername = "username"
	ContextRole     = "role"
)

// Handler bundles the repositories behind the API endpoints.
type Handler struct {
	db            *gorm.DB
	cfg           *config.AppConfig
	users         *repo.UserRepo
	timesheets    *repo.TimesheetRepo
	fuel          *repo.FuelRepo
	profiles      *repo.ProfileRepo
	settings      *repo.SettingsRepo
	notifications *repo.NotificationRepo
	dashboard     *repo.DashboardRepo
	refs          *repo.ReferenceRepo
	publisher     notify.Publisher
}

// New wires a Handler over the given database connection.
func New(conn *gorm.DB, cfg *config.AppConfig, publisher notify.Publisher) *Handler {
	refs := repo.NewReferenceRepo(conn)
	notifications := repo.NewNotificationRepo(conn)
	if publisher == nil {
		publisher = notify.NewLogPublisher()
	}
	return &Handler{
		db:            conn,
		cfg:           cfg,
		users:         repo.NewUserRepo(conn),
		timesheets:    repo.NewTimesheetRepo(conn),
		fuel:          repo.NewFuelRepo(conn, refs, cfg.Fuel.DefaultUnitPrice),
		profiles:      repo.NewProfileRepo(conn),
		settings:      repo.NewSettingsRepo(conn),
		notifications: notifications,
		dashboard:     repo.NewDashboardRepo(conn, notifications),
		refs:          refs,
		publisher:     publisher,
	}
}

// Healthz reports liveness, including a database ping.
func (h *Handler) Healthz(c *gin.Context) {
	if errPing := dbutil.Ping(h.db); errPing != nil {
		log.WithError(errPing).Error("health check database ping failed")
		response.Fail(c, 503, "database unavailable")
		return
	}
	response.OK(c, 200, gin.H{"status": "ok"}, "ok")
}

// principalFrom rebuilds the caller identity stored by the auth middleware.
func principalFrom(c *gin.Context) (repo.Principal, bool) {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return repo.Principal{}, false
	}
	userID, ok := id.(uint64)
	if !ok || userID == 0 {
		return repo.Principal{}, false
	}
	return repo.Principal{
		UserID:   userID,
		Username: c.GetString(ContextUsername),
		Role:     c.GetString(ContextRole),
	}, true
}

// mustPrincipal aborts with 401 when no identity was stored on the context.
func mustPrincipal(c *gin.Context) (repo.Principal, bool) {
	p, ok := principalFrom(c)
	if !ok {
		response.AbortFail(c, 401, "not authenticated")
	}
	return p, ok
}

// failRepo maps repository errors onto HTTP statuses with envelope bodies.
func failRepo(c *gin.Context, err error) {
	if vErr, ok := repo.AsValidation(err); ok {
		response.Fail(c, 400, vErr.Error())
		return
	}
	switch {
	case errors.Is(err, repo.ErrNotFound):
		response.Fail(c, 404, "not found")
	case errors.Is(err, repo.ErrForbidden):
		response.Fail(c, 403, "forbidden")
	case errors.Is(err, repo.ErrConflict):
		response.Fail(c, 409, "conflict, please retry")
	case errors.Is(err, repo.ErrInvalidCredentials):
		response.Fail(c, 401, "invalid credentials")
	default:
		log.WithError(err).Error("request failed")
		response.Fail(c, 500, "internal error")
	}
}

// parseDate accepts the wire date format, falling back to RFC 3339 for
// clients that send full timestamps.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

// parseID reads a positive numeric path parameter.
func parseID(c *gin.Context, name string) (uint64, bool) {
	id, errParse := strconv.ParseUint(c.Param(name), 10, 64)
	if errParse != nil || id == 0 {
		response.Fail(c, 400, "invalid id")
		return 0, false
	}
	return id, true
}
