// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Entry model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. Ownership is enforced in the SQL
// predicate of every mutation, never by the caller alone.
//
// Error semantics:
//   - A missing entry yields ErrNotFound (gorm.ErrRecordNotFound).
//   - A mutation of an entry owned by someone else yields ErrForbidden.
//   - Other DB errors are propagated unchanged.
package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for consistency across the service layer
// and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrForbidden is returned when a row exists but belongs to another user.
var ErrForbidden = errors.New("forbidden")

// CreateEntry inserts a new entry owned by userID. ID and CreatedAt are
// assigned here and never change afterwards.
func CreateEntry(ctx context.Context, db *gorm.DB, userID string, f domain.EntryFields) (*domain.Entry, error) {
	now := time.Now().UTC()
	e := &domain.Entry{
		ID:               uuid.NewString(),
		UserID:           userID,
		TopicOrPerson:    f.TopicOrPerson,
		ShortDescription: f.ShortDescription,
		URL:              f.URL,
		Details:          f.Details,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := db.WithContext(ctx).Create(e).Error; err != nil {
		return nil, err
	}
	return e, nil
}

// ListEntries returns every entry, newest first. Ties on created_at are
// broken by id so the order is stable between calls.
func ListEntries(ctx context.Context, db *gorm.DB) ([]domain.Entry, error) {
	var out []domain.Entry
	err := db.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Find(&out).Error
	return out, err
}

// ListRecentEntries returns at most limit entries, newest first.
func ListRecentEntries(ctx context.Context, db *gorm.DB, limit int) ([]domain.Entry, error) {
	var out []domain.Entry
	err := db.WithContext(ctx).
		Order("created_at desc").
		Order("id desc").
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetEntry fetches one entry by id, or ErrNotFound.
func GetEntry(ctx context.Context, db *gorm.DB, id string) (*domain.Entry, error) {
	var e domain.Entry
	if err := db.WithContext(ctx).Where("id = ?", id).First(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

// UpdateEntry writes the present fields of patch to the entry identified by
// id and owned by userID. updated_at is refreshed by GORM. When nothing
// matched, the cause is resolved to ErrNotFound or ErrForbidden.
func UpdateEntry(ctx context.Context, db *gorm.DB, id, userID string, patch domain.EntryPatch) error {
	cols := patch.Columns()
	if len(cols) == 0 {
		return nil
	}
	res := db.WithContext(ctx).
		Model(&domain.Entry{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(cols)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return missOrForbidden(ctx, db, id)
	}
	return nil
}

// DeleteEntry permanently removes the entry identified by id and owned by
// userID. Deleting a missing id is an error.
func DeleteEntry(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.Entry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return missOrForbidden(ctx, db, id)
	}
	return nil
}

func missOrForbidden(ctx context.Context, db *gorm.DB, id string) error {
	var n int64
	if err := db.WithContext(ctx).Model(&domain.Entry{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrForbidden
}
