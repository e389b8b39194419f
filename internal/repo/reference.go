package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/vepsplus/fieldops/internal/models"
	"gorm.io/gorm"
)

// ReferenceRepo serves the seeded lookup lists.
type ReferenceRepo struct {
	db *gorm.DB
}

// NewReferenceRepo constructs a ReferenceRepo.
func NewReferenceRepo(conn *gorm.DB) *ReferenceRepo {
	return &ReferenceRepo{db: conn}
}

// FuelTypes returns the fuel type list with unit prices.
func (r *ReferenceRepo) FuelTypes(ctx context.Context) ([]models.FuelTypeEntry, error) {
	raw, errLoad := r.load(ctx, models.ReferenceKeyFuelTypes)
	if errLoad != nil {
		return nil, errLoad
	}
	var entries []models.FuelTypeEntry
	if errUnmarshal := json.Unmarshal(raw, &entries); errUnmarshal != nil {
		return nil, fmt.Errorf("repo: decode fuel types: %w", errUnmarshal)
	}
	return entries, nil
}

// StringList returns a plain string reference list by key.
func (r *ReferenceRepo) StringList(ctx context.Context, key string) ([]string, error) {
	raw, errLoad := r.load(ctx, key)
	if errLoad != nil {
		return nil, errLoad
	}
	var values []string
	if errUnmarshal := json.Unmarshal(raw, &values); errUnmarshal != nil {
		return nil, fmt.Errorf("repo: decode %s reference: %w", key, errUnmarshal)
	}
	return values, nil
}

// UnitPriceFor resolves the per-liter price for a fuel type name.
// Matching is case-insensitive; ok is false for unknown names.
func (r *ReferenceRepo) UnitPriceFor(ctx context.Context, fuelType string) (float64, bool, error) {
	entries, errTypes := r.FuelTypes(ctx)
	if errTypes != nil {
		return 0, false, errTypes
	}
	for _, entry := range entries {
		if strings.EqualFold(entry.Name, fuelType) {
			return entry.UnitPrice, true, nil
		}
	}
	return 0, false, nil
}

// Workers returns the display names of all users, for boss-level filters.
func (r *ReferenceRepo) Workers(ctx context.Context) ([]string, error) {
	var ids []uint64
	if errFind := r.db.WithContext(ctx).Model(&models.User{}).Order("id ASC").Pluck("id", &ids).Error; errFind != nil {
		return nil, fmt.Errorf("repo: list worker ids: %w", errFind)
	}
	names, errNames := resolveDisplayNames(ctx, r.db, ids)
	if errNames != nil {
		return nil, errNames
	}
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if name := names[id]; name != "" {
			out = append(out, name)
		}
	}
	return out, nil
}

// load fetches the raw JSON payload for a reference key.
func (r *ReferenceRepo) load(ctx context.Context, key string) ([]byte, error) {
	var ref models.Reference
	if errFind := r.db.WithContext(ctx).Where("key = ?", key).First(&ref).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repo: load %s reference: %w", key, errFind)
	}
	return ref.Values, nil
}
