package models

import "time"

// Notification type values.
const (
	// NotificationTypeTimesheet marks timesheet review notifications.
	NotificationTypeTimesheet = "timesheet"
	// NotificationTypeReminder marks scheduled reminder notifications.
	NotificationTypeReminder = "reminder"
	// NotificationTypeSystem marks general system notifications.
	NotificationTypeSystem = "system"
)

// Notification represents one server-generated message for a user.
type Notification struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;index:idx_notifications_user_id_created_at"` // Recipient user ID.

	Title   string `gorm:"type:text;not null"`     // Short title.
	Message string `gorm:"type:text;not null"`     // Message body.
	Type    string `gorm:"type:text;not null"`     // Notification type.
	IsRead  bool   `gorm:"not null;default:false"` // Read flag, only ever flipped to true.

	CreatedAt time.Time `gorm:"not null;autoCreateTime;index:idx_notifications_user_id_created_at"` // Creation timestamp.
}
