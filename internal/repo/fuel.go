package repo

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	dbutil "github.com/vepsplus/fieldops/internal/db"
	"github.com/vepsplus/fieldops/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FuelView is the wire shape for one fuel record.
type FuelView struct {
	ID           uint64    `json:"id"`
	Fio          string    `json:"fio"`
	Date         time.Time `json:"date"`
	Volume       float64   `json:"volume"`
	Cost         float64   `json:"cost"`
	Mileage      int       `json:"mileage"`
	FuelType     string    `json:"fuelType"`
	CarModel     string    `json:"carModel,omitempty"`
	LicensePlate string    `json:"licensePlate"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FuelCreateInput is the input for a new fuel record.
type FuelCreateInput struct {
	Date         time.Time
	Volume       float64
	Mileage      int
	FuelType     string
	CarModel     string
	LicensePlate string
}

// FuelUpdateInput carries sparse update fields. Nil means untouched;
// a present but invalid value is rejected, never ignored.
type FuelUpdateInput struct {
	Date         *time.Time
	Volume       *float64
	Mileage      *int
	FuelType     *string
	CarModel     *string
	LicensePlate *string
}

// FuelRepo reads and writes fuel records scoped to their owner.
type FuelRepo struct {
	db               *gorm.DB
	refs             *ReferenceRepo
	defaultUnitPrice float64 // Per-liter fallback when a fuel type has no reference price.
}

// NewFuelRepo constructs a FuelRepo.
func NewFuelRepo(conn *gorm.DB, refs *ReferenceRepo, defaultUnitPrice float64) *FuelRepo {
	return &FuelRepo{db: conn, refs: refs, defaultUnitPrice: defaultUnitPrice}
}

// List returns the principal's own fuel records within the date range.
func (r *FuelRepo) List(ctx context.Context, p Principal, startDate, endDate *time.Time) ([]FuelView, error) {
	q := r.db.WithContext(ctx).Model(&models.FuelRecord{}).Where("user_id = ?", p.UserID)
	if startDate != nil {
		q = q.Where("date >= ?", *startDate)
	}
	if endDate != nil {
		q = q.Where("date <= ?", *endDate)
	}

	var rows []models.FuelRecord
	if errFind := q.Order("date DESC, created_at DESC").Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("repo: list fuel records: %w", errFind)
	}

	fio, errName := resolveDisplayName(ctx, r.db, p.UserID)
	if errName != nil {
		return nil, errName
	}
	out := make([]FuelView, 0, len(rows))
	for _, row := range rows {
		out = append(out, fuelView(&row, fio))
	}
	return out, nil
}

// Create validates and persists a new fuel record owned by the principal.
// The mileage monotonicity check and the insert run in one transaction so
// two concurrent creates cannot both validate against a stale prior record.
func (r *FuelRepo) Create(ctx context.Context, p Principal, input FuelCreateInput) (*FuelView, error) {
	if input.Date.IsZero() {
		return nil, validationFailed("date", "date is required")
	}
	if input.Volume <= 0 {
		return nil, validationFailed("volume", "volume must be positive")
	}
	if input.Mileage <= 0 {
		return nil, validationFailed("mileage", "mileage must be positive")
	}
	if input.FuelType == "" {
		return nil, validationFailed("fuelType", "fuel type is required")
	}
	if input.LicensePlate == "" {
		return nil, validationFailed("licensePlate", "license plate is required")
	}

	cost, errPrice := r.costFor(ctx, input.FuelType, input.Volume)
	if errPrice != nil {
		return nil, errPrice
	}

	var created models.FuelRecord
	errTx := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		prior, errPrior := r.priorRecord(tx, p.UserID, 0)
		if errPrior != nil {
			return errPrior
		}
		if prior != nil && prior.Mileage > input.Mileage {
			return validationFailed("mileage", fmt.Sprintf("mileage must not decrease below %d", prior.Mileage))
		}

		created = models.FuelRecord{
			UserID:       p.UserID,
			Date:         input.Date,
			Volume:       input.Volume,
			Cost:         cost,
			Mileage:      input.Mileage,
			FuelType:     input.FuelType,
			CarModel:     input.CarModel,
			LicensePlate: input.LicensePlate,
			CreatedAt:    time.Now().UTC(),
		}
		if errCreate := tx.Create(&created).Error; errCreate != nil {
			return fmt.Errorf("repo: create fuel record: %w", errCreate)
		}
		return nil
	})
	if errTx != nil {
		return nil, errTx
	}

	fio, errName := resolveDisplayName(ctx, r.db, p.UserID)
	if errName != nil {
		return nil, errName
	}
	view := fuelView(&created, fio)
	return &view, nil
}

// Update applies a sparse update to an owned fuel record. Ownership is
// re-checked inside the transaction; mileage and date changes are
// re-validated against the owner's prior record, excluding the row
// being updated.
func (r *FuelRepo) Update(ctx context.Context, p Principal, id uint64, input FuelUpdateInput) (*FuelView, error) {
	if input.Volume != nil && *input.Volume <= 0 {
		return nil, validationFailed("volume", "volume must be positive")
	}
	if input.Mileage != nil && *input.Mileage <= 0 {
		return nil, validationFailed("mileage", "mileage must be positive")
	}
	if input.FuelType != nil && *input.FuelType == "" {
		return nil, validationFailed("fuelType", "fuel type is required")
	}
	if input.LicensePlate != nil && *input.LicensePlate == "" {
		return nil, validationFailed("licensePlate", "license plate is required")
	}

	var updated models.FuelRecord
	errTx := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("id = ? AND user_id = ?", id, p.UserID)
		if !dbutil.IsSQLite(tx) {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var row models.FuelRecord
		if errFind := q.First(&row).Error; errFind != nil {
			if errors.Is(errFind, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("repo: load fuel record: %w", errFind)
		}

		if input.Date != nil {
			row.Date = *input.Date
		}
		// A date change repositions the row in the per-owner ordering, so
		// the prior-record comparison reruns for it as well as for mileage.
		if input.Mileage != nil || input.Date != nil {
			prior, errPrior := r.priorRecord(tx, p.UserID, row.ID)
			if errPrior != nil {
				return errPrior
			}
			candidate := row.Mileage
			if input.Mileage != nil {
				candidate = *input.Mileage
			}
			switch {
			case prior != nil && prior.Mileage > candidate:
				return validationFailed("mileage", fmt.Sprintf("mileage must not decrease below %d", prior.Mileage))
			case prior == nil && candidate < row.Mileage:
				return validationFailed("mileage", fmt.Sprintf("mileage must not decrease below %d", row.Mileage))
			}
			row.Mileage = candidate
		}
		if input.Volume != nil {
			row.Volume = *input.Volume
		}
		if input.FuelType != nil {
			row.FuelType = *input.FuelType
		}
		if input.CarModel != nil {
			row.CarModel = *input.CarModel
		}
		if input.LicensePlate != nil {
			row.LicensePlate = *input.LicensePlate
		}

		cost, errPrice := r.costFor(ctx, row.FuelType, row.Volume)
		if errPrice != nil {
			return errPrice
		}
		row.Cost = cost

		if errSave := tx.Save(&row).Error; errSave != nil {
			return fmt.Errorf("repo: update fuel record: %w", errSave)
		}
		updated = row
		return nil
	})
	if errTx != nil {
		return nil, errTx
	}

	fio, errName := resolveDisplayName(ctx, r.db, p.UserID)
	if errName != nil {
		return nil, errName
	}
	view := fuelView(&updated, fio)
	return &view, nil
}

// Delete removes an owned fuel record. Rows owned by someone else are
// indistinguishable from absent rows.
func (r *FuelRepo) Delete(ctx context.Context, p Principal, id uint64) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, p.UserID).Delete(&models.FuelRecord{})
	if res.Error != nil {
		return fmt.Errorf("repo: delete fuel record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// priorRecord returns the owner's most recent fuel record ordered by
// (date DESC, created_at DESC), excluding excludeID when non-zero. On
// PostgreSQL the row is locked for the enclosing transaction; SQLite
// serializes writers on its own.
func (r *FuelRepo) priorRecord(tx *gorm.DB, userID, excludeID uint64) (*models.FuelRecord, error) {
	q := tx.Where("user_id = ?", userID)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if !dbutil.IsSQLite(tx) {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var prior models.FuelRecord
	errFind := q.Order("date DESC, created_at DESC").First(&prior).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("repo: load prior fuel record: %w", errFind)
	}
	return &prior, nil
}

// costFor derives the record cost from volume and the fuel type unit price.
func (r *FuelRepo) costFor(ctx context.Context, fuelType string, volume float64) (float64, error) {
	unitPrice, known, errPrice := r.refs.UnitPriceFor(ctx, fuelType)
	if errPrice != nil && !errors.Is(errPrice, ErrNotFound) {
		return 0, errPrice
	}
	if !known {
		unitPrice = r.defaultUnitPrice
	}
	return math.Round(volume*unitPrice*100) / 100, nil
}

// fuelView maps a fuel record row to its wire shape.
func fuelView(row *models.FuelRecord, fio string) FuelView {
	return FuelView{
		ID:           row.ID,
		Fio:          fio,
		Date:         row.Date,
		Volume:       row.Volume,
		Cost:         row.Cost,
		Mileage:      row.Mileage,
		FuelType:     row.FuelType,
		CarModel:     row.CarModel,
		LicensePlate: row.LicensePlate,
		CreatedAt:    row.CreatedAt,
	}
}
