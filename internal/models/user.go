package models

import "time"

// User represents a field-worker account stored in the database.
type User struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Username string `gorm:"type:text;not null;uniqueIndex"`  // Unique login name.
	Password string `gorm:"type:text;not null"`              // Bcrypt password hash.
	Role     string `gorm:"type:text;not null;default:user"` // Role tag, lowercase.

	Profile     *Profile     `gorm:"foreignKey:UserID"` // Optional profile row.
	Settings    *Settings    `gorm:"foreignKey:UserID"` // Optional settings row.
	Timesheets  []Timesheet  `gorm:"foreignKey:UserID"` // Owned timesheets.
	FuelRecords []FuelRecord `gorm:"foreignKey:UserID"` // Owned fuel records.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
