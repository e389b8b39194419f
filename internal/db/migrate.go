package db

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/vepsplus/fieldops/internal/models"
	"gorm.io/gorm"
)

// Migrate runs schema migration, index creation, and reference seeding.
func Migrate(conn *gorm.DB) error {
	if conn == nil {
		return fmt.Errorf("db: nil connection")
	}

	if errAutoMigrate := conn.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Settings{},
		&models.Timesheet{},
		&models.FuelRecord{},
		&models.Notification{},
		&models.Reference{},
	); errAutoMigrate != nil {
		return fmt.Errorf("db: migrate: %w", errAutoMigrate)
	}

	// ddl defines an index statement to apply.
	type ddl struct {
		name string // Human-readable name for error reporting.
		sql  string // SQL to execute.
	}
	ddls := []ddl{
		{
			name: "idx_fuel_records_user_id_date_created_at",
			sql: `
				CREATE INDEX IF NOT EXISTS idx_fuel_records_user_id_date_created_at
				ON fuel_records (user_id, date DESC, created_at DESC)
			`,
		},
		{
			name: "idx_timesheets_user_id_status",
			sql: `
				CREATE INDEX IF NOT EXISTS idx_timesheets_user_id_status
				ON timesheets (user_id, status)
			`,
		},
		{
			name: "idx_notifications_user_id_is_read",
			sql: `
				CREATE INDEX IF NOT EXISTS idx_notifications_user_id_is_read
				ON notifications (user_id, is_read)
			`,
		},
	}
	for _, item := range ddls {
		if errDDL := conn.Exec(item.sql).Error; errDDL != nil {
			return fmt.Errorf("db: create index %s: %w", item.name, errDDL)
		}
	}

	return seedReferences(conn)
}

// defaultFuelTypes seeds the fuel type list with unit prices per liter.
var defaultFuelTypes = []models.FuelTypeEntry{
	{Name: "AI-92", UnitPrice: 50.50},
	{Name: "AI-95", UnitPrice: 55.20},
	{Name: "AI-98", UnitPrice: 63.80},
	{Name: "Diesel", UnitPrice: 62.40},
	{Name: "Gas", UnitPrice: 26.90},
}

// defaultCarModels seeds the vehicle category list.
var defaultCarModels = []string{"Car", "Truck", "Motorcycle", "Bus"}

// defaultProjects seeds the selectable project list.
var defaultProjects = []string{"Project 1", "Project 2", "Project 3", "Project 4", "Project 5"}

// defaultStatuses seeds the timesheet status list.
var defaultStatuses = []string{
	models.TimesheetStatusPending,
	models.TimesheetStatusApproved,
	models.TimesheetStatusRejected,
}

// seedReferences ensures every reference list exists with default values.
func seedReferences(conn *gorm.DB) error {
	if errSeed := ensureReference(conn, models.ReferenceKeyFuelTypes, defaultFuelTypes); errSeed != nil {
		return errSeed
	}
	if errSeed := ensureReference(conn, models.ReferenceKeyCarModels, defaultCarModels); errSeed != nil {
		return errSeed
	}
	if errSeed := ensureReference(conn, models.ReferenceKeyProjects, defaultProjects); errSeed != nil {
		return errSeed
	}
	return ensureReference(conn, models.ReferenceKeyStatuses, defaultStatuses)
}

// ensureReference creates a reference list when it is absent.
func ensureReference(conn *gorm.DB, key string, values any) error {
	var existing models.Reference
	errFind := conn.Where("key = ?", key).First(&existing).Error
	if errFind == nil {
		return nil
	}
	if !errors.Is(errFind, gorm.ErrRecordNotFound) {
		return fmt.Errorf("db: query %s reference: %w", key, errFind)
	}

	payload, errMarshal := json.Marshal(values)
	if errMarshal != nil {
		return fmt.Errorf("db: marshal %s reference: %w", key, errMarshal)
	}
	ref := models.Reference{
		Key:       key,
		Values:    payload,
		UpdatedAt: time.Now().UTC(),
	}
	if errCreate := conn.Create(&ref).Error; errCreate != nil {
		return fmt.Errorf("db: create %s reference: %w", key, errCreate)
	}
	return nil
}
