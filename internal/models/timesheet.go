package models

import "time"

// Timesheet status values.
const (
	// TimesheetStatusPending marks a newly submitted timesheet.
	TimesheetStatusPending = "pending"
	// TimesheetStatusApproved marks an approved timesheet.
	TimesheetStatusApproved = "approved"
	// TimesheetStatusRejected marks a rejected timesheet.
	TimesheetStatusRejected = "rejected"
)

// Timesheet represents one submitted work-hours entry.
type Timesheet struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;index:idx_timesheets_user_id_date"` // Owner user ID.
	User   *User  `gorm:"foreignKey:UserID"`                          // Owner user.

	Date         time.Time `gorm:"not null;index:idx_timesheets_user_id_date"` // Work date (date precision).
	Project      string    `gorm:"type:text;not null"`                         // Project name.
	Hours        int       `gorm:"not null"`                                   // Worked hours, 1..24.
	BusinessTrip bool      `gorm:"not null;default:false"`                     // Business trip flag.
	Comment      string    `gorm:"type:text"`                                  // Optional comment.
	Status       string    `gorm:"type:text;not null;default:pending;index"`   // Review status.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
}
