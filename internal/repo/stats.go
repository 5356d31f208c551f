// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides aggregate queries: list metadata for
// conditional responses (ETag generation) and the contributor leaderboard.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
)

// EntriesStats returns the total number of entries and the greatest
// UpdatedAt among them. When there are no entries, count is 0 and
// maxUpdatedAt is nil.
func EntriesStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Entry{})

	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}

// TopContributors ranks aliases by how many entries their owners submitted,
// highest first, ties broken alphabetically. Users without a profile have no
// public name and are left out.
func TopContributors(ctx context.Context, db *gorm.DB, limit int) ([]domain.Contributor, error) {
	var out []domain.Contributor
	err := db.WithContext(ctx).
		Table(domain.Entry{}.TableName() + " AS e").
		Select("p.alias AS alias, COUNT(e.id) AS entry_count").
		Joins("JOIN " + domain.Profile{}.TableName() + " AS p ON p.user_id = e.user_id").
		Group("p.alias").
		Order("entry_count DESC").
		Order("p.alias ASC").
		Limit(limit).
		Scan(&out).Error
	return out, err
}
