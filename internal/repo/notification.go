package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vepsplus/fieldops/internal/models"
	"gorm.io/gorm"
)

// NotificationView is the wire shape for one notification.
type NotificationView struct {
	ID        uint64    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// NotificationRepo reads and mutates the principal's own notifications.
type NotificationRepo struct {
	db *gorm.DB
}

// NewNotificationRepo constructs a NotificationRepo.
func NewNotificationRepo(conn *gorm.DB) *NotificationRepo {
	return &NotificationRepo{db: conn}
}

// List returns the principal's notifications, newest first.
func (r *NotificationRepo) List(ctx context.Context, p Principal) ([]NotificationView, error) {
	var rows []models.Notification
	if errFind := r.db.WithContext(ctx).
		Where("user_id = ?", p.UserID).
		Order("created_at DESC, id DESC").
		Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("repo: list notifications: %w", errFind)
	}
	out := make([]NotificationView, 0, len(rows))
	for _, row := range rows {
		out = append(out, notificationView(&row))
	}
	return out, nil
}

// MarkRead flips an owned notification to read. The operation is
// idempotent: marking an already-read notification succeeds again.
func (r *NotificationRepo) MarkRead(ctx context.Context, p Principal, id uint64) error {
	var row models.Notification
	if errFind := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, p.UserID).
		First(&row).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("repo: load notification: %w", errFind)
	}
	if row.IsRead {
		return nil
	}
	if errUpdate := r.db.WithContext(ctx).Model(&row).Update("is_read", true).Error; errUpdate != nil {
		return fmt.Errorf("repo: mark notification read: %w", errUpdate)
	}
	return nil
}

// Create inserts a server-generated notification for a user.
func (r *NotificationRepo) Create(ctx context.Context, userID uint64, title, message, notifType string) (*models.Notification, error) {
	row := models.Notification{
		UserID:    userID,
		Title:     title,
		Message:   message,
		Type:      notifType,
		CreatedAt: time.Now().UTC(),
	}
	if errCreate := r.db.WithContext(ctx).Create(&row).Error; errCreate != nil {
		return nil, fmt.Errorf("repo: create notification: %w", errCreate)
	}
	return &row, nil
}

// UnreadCount returns the number of unread notifications for a user.
func (r *NotificationRepo) UnreadCount(ctx context.Context, userID uint64) (int64, error) {
	var count int64
	if errCount := r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; errCount != nil {
		return 0, fmt.Errorf("repo: count unread notifications: %w", errCount)
	}
	return count, nil
}

// notificationView maps a notification row to its wire shape.
func notificationView(row *models.Notification) NotificationView {
	return NotificationView{
		ID:        row.ID,
		Title:     row.Title,
		Message:   row.Message,
		Type:      row.Type,
		IsRead:    row.IsRead,
		CreatedAt: row.CreatedAt,
	}
}
