// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for contributor
// profiles.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
)

// GetProfile returns the profile of userID, or ErrNotFound.
func GetProfile(ctx context.Context, db *gorm.DB, userID string) (*domain.Profile, error) {
	var p domain.Profile
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// UpsertProfile inserts the profile of userID, or updates its alias in place
// when one already exists. A clash on alias_key with another user's profile
// yields ErrDuplicate and leaves the stored row untouched.
func UpsertProfile(ctx context.Context, db *gorm.DB, userID, alias, aliasKey string) (*domain.Profile, error) {
	now := time.Now().UTC()
	p := &domain.Profile{
		UserID:    userID,
		Alias:     alias,
		AliasKey:  aliasKey,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"alias", "alias_key", "updated_at"}),
		}).
		Create(p).Error
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, err
	}
	return GetProfile(ctx, db, userID)
}
