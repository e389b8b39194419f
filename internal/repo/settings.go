package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vepsplus/fieldops/internal/models"
	"gorm.io/gorm"
)

// SettingsView is the wire shape for per-user settings.
type SettingsView struct {
	DarkTheme         bool   `json:"darkTheme"`
	PushNotifications bool   `json:"pushNotifications"`
	Language          string `json:"language"`
}

// SettingsUpdateInput carries a settings write. Theme and push flags are
// always provided by the client; language is optional.
type SettingsUpdateInput struct {
	DarkTheme         bool
	PushNotifications bool
	Language          *string
}

// SettingsRepo reads and upserts the principal's own settings row.
type SettingsRepo struct {
	db *gorm.DB
}

// NewSettingsRepo constructs a SettingsRepo.
func NewSettingsRepo(conn *gorm.DB) *SettingsRepo {
	return &SettingsRepo{db: conn}
}

// Get returns the principal's settings, falling back to the documented
// defaults without creating a row.
func (r *SettingsRepo) Get(ctx context.Context, p Principal) (*SettingsView, error) {
	var row models.Settings
	errFind := r.db.WithContext(ctx).Where("user_id = ?", p.UserID).First(&row).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			defaults := models.DefaultSettings(p.UserID)
			view := settingsView(&defaults)
			return &view, nil
		}
		return nil, fmt.Errorf("repo: load settings: %w", errFind)
	}
	view := settingsView(&row)
	return &view, nil
}

// Upsert creates the principal's settings row on first write and updates
// it afterwards; an omitted language keeps its stored value.
func (r *SettingsRepo) Upsert(ctx context.Context, p Principal, input SettingsUpdateInput) (*SettingsView, error) {
	var row models.Settings
	errFind := r.db.WithContext(ctx).Where("user_id = ?", p.UserID).First(&row).Error
	if errFind != nil {
		if !errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("repo: load settings: %w", errFind)
		}
		row = models.DefaultSettings(p.UserID)
	}

	row.DarkTheme = input.DarkTheme
	row.PushNotifications = input.PushNotifications
	if input.Language != nil && *input.Language != "" {
		row.Language = *input.Language
	}
	row.UpdatedAt = time.Now().UTC()

	if errSave := r.db.WithContext(ctx).Save(&row).Error; errSave != nil {
		return nil, fmt.Errorf("repo: save settings: %w", errSave)
	}
	view := settingsView(&row)
	return &view, nil
}

// settingsView maps a settings row to its wire shape.
func settingsView(row *models.Settings) SettingsView {
	return SettingsView{
		DarkTheme:         row.DarkTheme,
		PushNotifications: row.PushNotifications,
		Language:          row.Language,
	}
}
