package models

import "time"

// Profile holds display and contact details for one user.
type Profile struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;uniqueIndex"` // Owner user ID, one profile per user.

	FullName string `gorm:"type:text"` // Display name, falls back to username when empty.
	Email    string `gorm:"type:text"` // Contact email.
	Phone    string `gorm:"type:text"` // Contact phone.

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
