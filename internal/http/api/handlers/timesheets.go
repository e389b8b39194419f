package handlers

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vepsplus/fieldops/internal/models"
	"github.com/vepsplus/fieldops/internal/repo"
	"github.com/vepsplus/fieldops/internal/response"
)

type timesheetCreateRequest struct {
	Date         string `json:"date"`         // Wire format 2006-01-02.
	Project      string `json:"project"`      //
	Hours        int    `json:"hours"`        //
	BusinessTrip bool   `json:"businessTrip"` //
	Comment      string `json:"comment"`      //
}

type timesheetStatusRequest struct {
	Status string `json:"status"`
}

// ListTimesheets returns timesheets visible to the caller, optionally
// filtered by date range, worker name, project, and status.
func (h *Handler) ListTimesheets(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var filter repo.TimesheetFilter
	if raw := c.Query("startDate"); raw != "" {
		t, errParse := parseDate(raw)
		if errParse != nil {
			response.Fail(c, 400, "invalid startDate")
			return
		}
		filter.StartDate = &t
	}
	if raw := c.Query("endDate"); raw != "" {
		t, errParse := parseDate(raw)
		if errParse != nil {
			response.Fail(c, 400, "invalid endDate")
			return
		}
		filter.EndDate = &t
	}
	filter.Worker = c.Query("worker")
	filter.Project = c.Query("project")
	filter.Status = c.Query("status")

	views, err := h.timesheets.List(c.Request.Context(), p, filter)
	if err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 200, views, "ok")
}

// CreateTimesheet records a new timesheet owned by the caller.
func (h *Handler) CreateTimesheet(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	var req timesheetCreateRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		response.Fail(c, 400, "invalid request body")
		return
	}
	date, errParse := parseDate(req.Date)
	if errParse != nil {
		response.Fail(c, 400, "invalid date")
		return
	}
	view, err := h.timesheets.Create(c.Request.Context(), p, repo.TimesheetCreateInput{
		Date:         date,
		Project:      req.Project,
		Hours:        req.Hours,
		BusinessTrip: req.BusinessTrip,
		Comment:      req.Comment,
	})
	if err != nil {
		failRepo(c, err)
		return
	}
	response.OK(c, 201, view, "timesheet created")
}

// UpdateTimesheetStatus approves or rejects a timesheet. Restricted to
// supervisor-level callers; the owner is notified of the decision.
func (h *Handler) UpdateTimesheetStatus(c *gin.Context) {
	p, ok := mustPrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req timesheetStatusRequest
	if errBind := c.ShouldBindJSON(&req); errBind != nil {
		response.Fail(c, 400, "invalid request body")
		return
	}
	view, err := h.timesheets.UpdateStatus(c.Request.Context(), p, id, req.Status)
	if err != nil {
		failRepo(c, err)
		return
	}
	h.notifyTimesheetDecision(c.Request.Context(), id, view)
	response.OK(c, 200, view, "status updated")
}

// notifyTimesheetDecision fans out a notification to the timesheet owner.
// Failures are logged, never surfaced: the status change already committed.
func (h *Handler) notifyTimesheetDecision(ctx context.Context, id uint64, view *repo.TimesheetView) {
	ownerID, errOwner := h.timesheets.OwnerID(ctx, id)
	if errOwner != nil {
		log.WithError(errOwner).WithField("timesheet_id", id).Warn("resolve timesheet owner")
		return
	}
	message := fmt.Sprintf("Your timesheet for %s was %s", view.Date.Format("2006-01-02"), view.Status)
	n, errCreate := h.notifications.Create(ctx, ownerID, "Timesheet reviewed", message, models.NotificationTypeTimesheet)
	if errCreate != nil {
		log.WithError(errCreate).WithField("user_id", ownerID).Warn("create notification")
		return
	}
	if errPub := h.publisher.Publish(ctx, n); errPub != nil {
		log.WithError(errPub).WithField("notification_id", n.ID).Warn("publish notification")
	}
}
