package repo

import (
	"context"
	"fmt"

	"github.com/vepsplus/fieldops/internal/models"
	"gorm.io/gorm"
)

// DashboardView aggregates one user's activity, computed on read.
type DashboardView struct {
	TotalHours          int64   `json:"totalHours"`
	TotalFuelCost       float64 `json:"totalFuelCost"`
	TotalMileage        int64   `json:"totalMileage"`
	UnreadNotifications int64   `json:"unreadNotifications"`
}

// DashboardRepo computes the per-user dashboard aggregate.
type DashboardRepo struct {
	db            *gorm.DB
	notifications *NotificationRepo
}

// NewDashboardRepo constructs a DashboardRepo.
func NewDashboardRepo(conn *gorm.DB, notifications *NotificationRepo) *DashboardRepo {
	return &DashboardRepo{db: conn, notifications: notifications}
}

// Summarize aggregates the principal's own rows across all entities.
func (r *DashboardRepo) Summarize(ctx context.Context, p Principal) (*DashboardView, error) {
	var view DashboardView

	if errSum := r.db.WithContext(ctx).
		Model(&models.Timesheet{}).
		Where("user_id = ?", p.UserID).
		Select("COALESCE(SUM(hours), 0)").
		Scan(&view.TotalHours).Error; errSum != nil {
		return nil, fmt.Errorf("repo: sum hours: %w", errSum)
	}

	if errSum := r.db.WithContext(ctx).
		Model(&models.FuelRecord{}).
		Where("user_id = ?", p.UserID).
		Select("COALESCE(SUM(cost), 0)").
		Scan(&view.TotalFuelCost).Error; errSum != nil {
		return nil, fmt.Errorf("repo: sum fuel cost: %w", errSum)
	}

	if errSum := r.db.WithContext(ctx).
		Model(&models.FuelRecord{}).
		Where("user_id = ?", p.UserID).
		Select("COALESCE(SUM(mileage), 0)").
		Scan(&view.TotalMileage).Error; errSum != nil {
		return nil, fmt.Errorf("repo: sum mileage: %w", errSum)
	}

	unread, errUnread := r.notifications.UnreadCount(ctx, p.UserID)
	if errUnread != nil {
		return nil, errUnread
	}
	view.UnreadNotifications = unread

	return &view, nil
}
