package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
)

// UpsertUser returns the local user bound to (provider, subject), creating it
// on first sign-in. The stored email follows the provider's latest value.
func UpsertUser(ctx context.Context, db *gorm.DB, provider, subject, email string) (*domain.User, error) {
	var u domain.User
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("provider = ? AND subject = ?", provider, subject).First(&u).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			now := time.Now().UTC()
			u = domain.User{
				ID:        uuid.NewString(),
				Provider:  provider,
				Subject:   subject,
				Email:     email,
				CreatedAt: now,
				UpdatedAt: now,
			}
			return tx.Create(&u).Error
		case err != nil:
			return err
		}
		if u.Email == email {
			return nil
		}
		u.Email = email
		return tx.Model(&u).Update("email", email).Error
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUser returns a user by id, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}
