package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vepsplus/fieldops/internal/models"
	"github.com/vepsplus/fieldops/internal/roles"
	"github.com/vepsplus/fieldops/internal/security"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserView is the wire shape for a user account, without credentials.
type UserView struct {
	ID        uint64    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	RoleName  string    `json:"roleName"`
	CreatedAt time.Time `json:"createdAt"`
}

// UserRepo manages accounts and credential checks.
type UserRepo struct {
	db *gorm.DB
}

// NewUserRepo constructs a UserRepo.
func NewUserRepo(conn *gorm.DB) *UserRepo {
	return &UserRepo{db: conn}
}

// Authenticate verifies a username/password pair. Unknown usernames and
// wrong passwords both come back as ErrInvalidCredentials so the login
// response cannot be used for username enumeration; the distinction is
// kept in internal logs only.
func (r *UserRepo) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	errFind := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error
	if errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			log.WithField("username", username).Debug("login for unknown username")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("repo: load user: %w", errFind)
	}
	if !security.VerifyPassword(user.Password, password) {
		log.WithField("username", username).Debug("login with wrong password")
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// Create registers a new account with a hashed password.
func (r *UserRepo) Create(ctx context.Context, username, password, role string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, validationFailed("username", "username is required")
	}
	if strings.TrimSpace(password) == "" {
		return nil, validationFailed("password", "password is required")
	}
	role = roles.Normalize(role)
	if !roles.IsValid(role) {
		return nil, validationFailed("role", "unknown role")
	}

	hash, errHash := security.HashPassword(password)
	if errHash != nil {
		return nil, fmt.Errorf("repo: hash password: %w", errHash)
	}

	now := time.Now().UTC()
	user := models.User{
		Username:  username,
		Password:  hash,
		Role:      role,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if errCreate := r.db.WithContext(ctx).Create(&user).Error; errCreate != nil {
		return nil, fmt.Errorf("repo: create user: %w", errCreate)
	}
	return &user, nil
}

// Get returns a user visible to the principal. Users may only read
// themselves; the mismatch is reported as not found, not forbidden.
func (r *UserRepo) Get(ctx context.Context, p Principal, id uint64) (*UserView, error) {
	if id != p.UserID {
		return nil, ErrNotFound
	}
	var user models.User
	if errFind := r.db.WithContext(ctx).First(&user, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repo: load user: %w", errFind)
	}
	view := userView(&user)
	return &view, nil
}

// ChangePassword verifies the current password and stores a new hash.
func (r *UserRepo) ChangePassword(ctx context.Context, p Principal, currentPassword, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return validationFailed("newPassword", "new password is required")
	}
	if len(newPassword) < 4 {
		return validationFailed("newPassword", "new password must be at least 4 characters")
	}

	var user models.User
	if errFind := r.db.WithContext(ctx).First(&user, p.UserID).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("repo: load user: %w", errFind)
	}
	if !security.VerifyPassword(user.Password, currentPassword) {
		return validationFailed("currentPassword", "current password is incorrect")
	}

	hash, errHash := security.HashPassword(newPassword)
	if errHash != nil {
		return fmt.Errorf("repo: hash password: %w", errHash)
	}
	if errUpdate := r.db.WithContext(ctx).Model(&user).
		Updates(map[string]any{"password": hash, "updated_at": time.Now().UTC()}).Error; errUpdate != nil {
		return fmt.Errorf("repo: change password: %w", errUpdate)
	}
	return nil
}

// userView maps a user row to its credential-free wire shape.
func userView(user *models.User) UserView {
	return UserView{
		ID:        user.ID,
		Username:  user.Username,
		Role:      user.Role,
		RoleName:  roles.DisplayName(user.Role),
		CreatedAt: user.CreatedAt,
	}
}
