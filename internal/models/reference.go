package models

import (
	"time"

	"gorm.io/datatypes"
)

// Reference list keys seeded at migration time.
const (
	// ReferenceKeyFuelTypes lists fuel types with unit prices.
	ReferenceKeyFuelTypes = "fuel_types"
	// ReferenceKeyCarModels lists vehicle model categories.
	ReferenceKeyCarModels = "car_models"
	// ReferenceKeyProjects lists selectable project names.
	ReferenceKeyProjects = "projects"
	// ReferenceKeyStatuses lists timesheet status names.
	ReferenceKeyStatuses = "statuses"
)

// Reference stores one named lookup list as a JSON payload.
type Reference struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Key    string         `gorm:"type:text;not null;uniqueIndex"` // List key.
	Values datatypes.JSON `gorm:"not null"`                       // JSON list payload.

	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}

// FuelTypeEntry is one element of the fuel_types reference list.
type FuelTypeEntry struct {
	Name      string  `json:"name"`      // Fuel type name shown to the client.
	UnitPrice float64 `json:"unitPrice"` // Price per liter used to derive cost.
}
