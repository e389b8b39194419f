package models

import "time"

// Settings defaults applied when a user has no stored row.
const (
	// DefaultDarkTheme is the default theme preference.
	DefaultDarkTheme = true
	// DefaultPushNotifications is the default push preference.
	DefaultPushNotifications = true
	// DefaultLanguage is the default UI language.
	DefaultLanguage = "ru"
)

// Settings holds per-user client preferences.
type Settings struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;uniqueIndex"` // Owner user ID, one row per user.

	// No column defaults here: gorm omits zero-valued fields that carry a
	// default tag on INSERT, which would turn an explicit false into the
	// column default. Defaults live in DefaultSettings only.
	DarkTheme         bool   `gorm:"not null"`           // Dark theme preference.
	PushNotifications bool   `gorm:"not null"`           // Push notification preference.
	Language          string `gorm:"type:text;not null"` // UI language code.

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// DefaultSettings returns the documented defaults for a user without a row.
func DefaultSettings(userID uint64) Settings {
	return Settings{
		UserID:            userID,
		DarkTheme:         DefaultDarkTheme,
		PushNotifications: DefaultPushNotifications,
		Language:          DefaultLanguage,
	}
}
