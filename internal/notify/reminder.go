package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/vepsplus/fieldops/internal/models"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// pendingReminderAge is how long a timesheet may sit pending before its
// owner gets a reminder.
const pendingReminderAge = 7 * 24 * time.Hour

// Reminder periodically notifies owners of long-pending timesheets.
type Reminder struct {
	db        *gorm.DB
	publisher Publisher
	cron      *cron.Cron
}

// NewReminder constructs a Reminder with the given publisher.
func NewReminder(conn *gorm.DB, publisher Publisher) *Reminder {
	return &Reminder{db: conn, publisher: publisher, cron: cron.New()}
}

// Start schedules the weekly reminder run. The schedule fires Monday
// mornings; RunOnce remains callable directly for tests.
func (r *Reminder) Start(ctx context.Context) error {
	_, errAdd := r.cron.AddFunc("0 8 * * 1", func() {
		if errRun := r.RunOnce(ctx); errRun != nil {
			log.WithError(errRun).Error("pending timesheet reminder failed")
		}
	})
	if errAdd != nil {
		return fmt.Errorf("notify: schedule reminder: %w", errAdd)
	}
	r.cron.Start()
	return nil
}

// Stop halts the schedule.
func (r *Reminder) Stop() {
	if r.cron != nil {
		r.cron.Stop()
	}
}

// RunOnce creates one reminder notification per owner who has timesheets
// still pending past the reminder age.
func (r *Reminder) RunOnce(ctx context.Context) error {
	cutoff := time.Now().UTC().Add(-pendingReminderAge)

	var ownerIDs []uint64
	if errFind := r.db.WithContext(ctx).
		Model(&models.Timesheet{}).
		Where("status = ? AND created_at <= ?", models.TimesheetStatusPending, cutoff).
		Distinct("user_id").
		Pluck("user_id", &ownerIDs).Error; errFind != nil {
		return fmt.Errorf("notify: list pending owners: %w", errFind)
	}

	for _, ownerID := range ownerIDs {
		row := models.Notification{
			UserID:    ownerID,
			Title:     "Pending timesheets",
			Message:   "You have timesheets awaiting review for more than a week",
			Type:      models.NotificationTypeReminder,
			CreatedAt: time.Now().UTC(),
		}
		if errCreate := r.db.WithContext(ctx).Create(&row).Error; errCreate != nil {
			return fmt.Errorf("notify: create reminder: %w", errCreate)
		}
		if errPublish := r.publisher.Publish(ctx, &row); errPublish != nil {
			log.WithError(errPublish).WithField("user_id", ownerID).Warn("reminder publish failed")
		}
	}
	return nil
}
