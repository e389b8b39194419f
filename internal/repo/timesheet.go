package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dbutil "github.com/vepsplus/fieldops/internal/db"
	"github.com/vepsplus/fieldops/internal/models"
	"github.com/vepsplus/fieldops/internal/roles"
	"gorm.io/gorm"
)

// TimesheetView is the wire shape for one timesheet, with the owner's
// display name denormalized into fio.
type TimesheetView struct {
	ID           uint64    `json:"id"`
	Fio          string    `json:"fio"`
	Date         time.Time `json:"date"`
	Project      string    `json:"project"`
	Hours        int       `json:"hours"`
	BusinessTrip bool      `json:"businessTrip"`
	Comment      string    `json:"comment"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// TimesheetFilter narrows a timesheet listing.
type TimesheetFilter struct {
	StartDate *time.Time // Inclusive lower date bound.
	EndDate   *time.Time // Inclusive upper date bound.
	Worker    string     // Display-name substring, effective for boss scope only.
	Project   string     // Exact project match.
	Status    string     // Exact status match.
}

// TimesheetCreateInput is the validated input for a new timesheet.
type TimesheetCreateInput struct {
	Date         time.Time
	Project      string
	Hours        int
	BusinessTrip bool
	Comment      string
}

// TimesheetRepo reads and writes timesheets scoped to a principal.
type TimesheetRepo struct {
	db *gorm.DB
}

// NewTimesheetRepo constructs a TimesheetRepo.
func NewTimesheetRepo(conn *gorm.DB) *TimesheetRepo {
	return &TimesheetRepo{db: conn}
}

// List returns timesheets visible to the principal. Roles at or above boss
// see all owners' rows; everyone else sees only their own.
func (r *TimesheetRepo) List(ctx context.Context, p Principal, filter TimesheetFilter) ([]TimesheetView, error) {
	q := r.db.WithContext(ctx).Model(&models.Timesheet{})
	if !roles.HasPermission(p.Role, roles.Boss) {
		q = q.Where("timesheets.user_id = ?", p.UserID)
	}

	if filter.StartDate != nil {
		q = q.Where("timesheets.date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		q = q.Where("timesheets.date <= ?", *filter.EndDate)
	}
	if filter.Project != "" {
		q = q.Where("timesheets.project = ?", filter.Project)
	}
	if filter.Status != "" {
		q = q.Where("timesheets.status = ?", filter.Status)
	}
	if filter.Worker != "" {
		pattern := dbutil.NormalizeLikePattern(r.db, "%"+filter.Worker+"%")
		q = q.Joins("JOIN users ON users.id = timesheets.user_id").
			Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
			Where(
				dbutil.CaseInsensitiveLikeExpr(r.db, "users.username")+" OR "+
					dbutil.CaseInsensitiveLikeExpr(r.db, "profiles.full_name"),
				pattern,
				pattern,
			)
	}

	var rows []models.Timesheet
	if errFind := q.Order("timesheets.date DESC, timesheets.created_at DESC").Find(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("repo: list timesheets: %w", errFind)
	}

	ownerIDs := make([]uint64, 0, len(rows))
	for _, row := range rows {
		ownerIDs = append(ownerIDs, row.UserID)
	}
	names, errNames := resolveDisplayNames(ctx, r.db, ownerIDs)
	if errNames != nil {
		return nil, errNames
	}

	out := make([]TimesheetView, 0, len(rows))
	for _, row := range rows {
		out = append(out, timesheetView(&row, names[row.UserID]))
	}
	return out, nil
}

// Create validates and persists a new timesheet owned by the principal.
// Ownership is stamped from the principal; status always starts pending.
func (r *TimesheetRepo) Create(ctx context.Context, p Principal, input TimesheetCreateInput) (*TimesheetView, error) {
	if input.Date.IsZero() {
		return nil, validationFailed("date", "date is required")
	}
	if input.Project == "" {
		return nil, validationFailed("project", "project is required")
	}
	if input.Hours < 1 || input.Hours > 24 {
		return nil, validationFailed("hours", "hours must be between 1 and 24")
	}

	row := models.Timesheet{
		UserID:       p.UserID,
		Date:         input.Date,
		Project:      input.Project,
		Hours:        input.Hours,
		BusinessTrip: input.BusinessTrip,
		Comment:      input.Comment,
		Status:       models.TimesheetStatusPending,
		CreatedAt:    time.Now().UTC(),
	}
	if errCreate := r.db.WithContext(ctx).Create(&row).Error; errCreate != nil {
		return nil, fmt.Errorf("repo: create timesheet: %w", errCreate)
	}

	fio, errName := resolveDisplayName(ctx, r.db, p.UserID)
	if errName != nil {
		return nil, errName
	}
	view := timesheetView(&row, fio)
	return &view, nil
}

// UpdateStatus transitions a timesheet's review status. Only roles at or
// above boss may do this; the role check runs before any lookup so callers
// below that level learn nothing about foreign rows.
func (r *TimesheetRepo) UpdateStatus(ctx context.Context, p Principal, id uint64, status string) (*TimesheetView, error) {
	if !roles.HasPermission(p.Role, roles.Boss) {
		return nil, ErrForbidden
	}
	if status != models.TimesheetStatusApproved && status != models.TimesheetStatusRejected {
		return nil, validationFailed("status", "status must be approved or rejected")
	}

	var row models.Timesheet
	if errFind := r.db.WithContext(ctx).First(&row, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repo: load timesheet: %w", errFind)
	}

	if errUpdate := r.db.WithContext(ctx).Model(&row).Update("status", status).Error; errUpdate != nil {
		return nil, fmt.Errorf("repo: update timesheet status: %w", errUpdate)
	}
	row.Status = status

	fio, errName := resolveDisplayName(ctx, r.db, row.UserID)
	if errName != nil {
		return nil, errName
	}
	view := timesheetView(&row, fio)
	return &view, nil
}

// OwnerID returns the owner of a timesheet for notification fan-out.
func (r *TimesheetRepo) OwnerID(ctx context.Context, id uint64) (uint64, error) {
	var row models.Timesheet
	if errFind := r.db.WithContext(ctx).Select("user_id").First(&row, id).Error; errFind != nil {
		if errors.Is(errFind, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("repo: load timesheet owner: %w", errFind)
	}
	return row.UserID, nil
}

// timesheetView maps a timesheet row to its wire shape.
func timesheetView(row *models.Timesheet, fio string) TimesheetView {
	return TimesheetView{
		ID:           row.ID,
		Fio:          fio,
		Date:         row.Date,
		Project:      row.Project,
		Hours:        row.Hours,
		BusinessTrip: row.BusinessTrip,
		Comment:      row.Comment,
		Status:       row.Status,
		CreatedAt:    row.CreatedAt,
	}
}
