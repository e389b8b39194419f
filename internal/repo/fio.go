package repo

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// displayNameRow carries one resolved display name.
type displayNameRow struct {
	ID       uint64 `gorm:"column:id"`        // User ID.
	Username string `gorm:"column:username"`  // Login name fallback.
	FullName string `gorm:"column:full_name"` // Profile full name, may be empty.
}

// resolveDisplayNames maps user IDs to their display name: the profile full
// name when present, the username otherwise.
func resolveDisplayNames(ctx context.Context, conn *gorm.DB, userIDs []uint64) (map[uint64]string, error) {
	out := make(map[uint64]string, len(userIDs))
	if len(userIDs) == 0 {
		return out, nil
	}

	var rows []displayNameRow
	if errFind := conn.WithContext(ctx).
		Table("users").
		Select("users.id, users.username, profiles.full_name").
		Joins("LEFT JOIN profiles ON profiles.user_id = users.id").
		Where("users.id IN ?", userIDs).
		Scan(&rows).Error; errFind != nil {
		return nil, fmt.Errorf("repo: resolve display names: %w", errFind)
	}

	for _, row := range rows {
		name := strings.TrimSpace(row.FullName)
		if name == "" {
			name = row.Username
		}
		out[row.ID] = name
	}
	return out, nil
}

// resolveDisplayName resolves a single user's display name.
func resolveDisplayName(ctx context.Context, conn *gorm.DB, userID uint64) (string, error) {
	names, errResolve := resolveDisplayNames(ctx, conn, []uint64{userID})
	if errResolve != nil {
		return "", errResolve
	}
	return names[userID], nil
}
