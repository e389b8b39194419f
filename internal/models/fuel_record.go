package models

import "time"

// FuelRecord represents one vehicle refueling entry.
type FuelRecord struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	UserID uint64 `gorm:"not null;index:idx_fuel_records_user_id_date"` // Owner user ID.
	User   *User  `gorm:"foreignKey:UserID"`                            // Owner user.

	Date         time.Time `gorm:"not null;index:idx_fuel_records_user_id_date"` // Refuel date (date precision).
	Volume       float64   `gorm:"type:decimal(10,2);not null"`                  // Fuel volume in liters, > 0.
	Cost         float64   `gorm:"type:decimal(12,2);not null"`                  // Derived cost, volume times unit price.
	Mileage      int       `gorm:"not null"`                                     // Odometer reading, > 0, non-decreasing per owner.
	FuelType     string    `gorm:"type:text;not null"`                           // Fuel type name.
	CarModel     string    `gorm:"type:text"`                                    // Optional vehicle model.
	LicensePlate string    `gorm:"type:text;not null"`                           // Vehicle license plate.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
}
