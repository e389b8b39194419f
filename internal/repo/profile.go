package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vepsplus/fieldops/internal/models"
	"gorm.io/gorm"
)

// ProfileView is the wire shape for a user's profile.
type ProfileView struct {
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProfileUpdateInput carries sparse profile fields; nil leaves a field untouched.
type ProfileUpdateInput struct {
	FullName *string
	Email    *string
	Phone    *string
}

// ProfileRepo reads and upserts the principal's own profile.
type ProfileRepo struct {
	db *gorm.DB
}

// NewProfileRepo constructs a ProfileRepo.
func NewProfileRepo(conn *gorm.DB) *ProfileRepo {
	return &ProfileRepo{db: conn}
}

// Get returns the principal's profile or ErrNotFound when none exists yet.
func (r *ProfileRepo) Get(ctx context.Context, p Principal) (*ProfileView, error) {
	var row models.Profile
	if errFind := r.db.WithContext(ctx).Where("user_id = ?", p.UserID).First(&row).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repo: load profile: %w", errFind)
	}
	view := profileView(&row)
	return &view, nil
}

// Upsert creates the principal's profile on first write and applies only
// the provided fields on subsequent writes.
func (r *ProfileRepo) Upsert(ctx context.Context, p Principal, input ProfileUpdateInput) (*ProfileView, error) {
	var row models.Profile
	errFind := r.db.WithContext(ctx).Where("user_id = ?", p.UserID).First(&row).Error
	if errFind != nil && !errors.Is(errFind, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("repo: load profile: %w", errFind)
	}
	row.UserID = p.UserID

	if input.FullName != nil {
		row.FullName = *input.FullName
	}
	if input.Email != nil {
		row.Email = *input.Email
	}
	if input.Phone != nil {
		row.Phone = *input.Phone
	}
	row.UpdatedAt = time.Now().UTC()

	if errSave := r.db.WithContext(ctx).Save(&row).Error; errSave != nil {
		return nil, fmt.Errorf("repo: save profile: %w", errSave)
	}
	view := profileView(&row)
	return &view, nil
}

// profileView maps a profile row to its wire shape.
func profileView(row *models.Profile) ProfileView {
	return ProfileView{
		FullName:  row.FullName,
		Email:     row.Email,
		Phone:     row.Phone,
		UpdatedAt: row.UpdatedAt,
	}
}
