package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
)

// Store exposes the package functions as methods so services can depend on
// narrow interfaces and tests can swap in fakes.
type Store struct{}

func (Store) CreateEntry(ctx context.Context, db *gorm.DB, userID string, f domain.EntryFields) (*domain.Entry, error) {
	return CreateEntry(ctx, db, userID, f)
}

func (Store) ListEntries(ctx context.Context, db *gorm.DB) ([]domain.Entry, error) {
	return ListEntries(ctx, db)
}

func (Store) ListRecentEntries(ctx context.Context, db *gorm.DB, limit int) ([]domain.Entry, error) {
	return ListRecentEntries(ctx, db, limit)
}

func (Store) GetEntry(ctx context.Context, db *gorm.DB, id string) (*domain.Entry, error) {
	return GetEntry(ctx, db, id)
}

func (Store) UpdateEntry(ctx context.Context, db *gorm.DB, id, userID string, patch domain.EntryPatch) error {
	return UpdateEntry(ctx, db, id, userID, patch)
}

func (Store) DeleteEntry(ctx context.Context, db *gorm.DB, id, userID string) error {
	return DeleteEntry(ctx, db, id, userID)
}

func (Store) GetProfile(ctx context.Context, db *gorm.DB, userID string) (*domain.Profile, error) {
	return GetProfile(ctx, db, userID)
}

func (Store) UpsertProfile(ctx context.Context, db *gorm.DB, userID, alias, aliasKey string) (*domain.Profile, error) {
	return UpsertProfile(ctx, db, userID, alias, aliasKey)
}

func (Store) TopContributors(ctx context.Context, db *gorm.DB, limit int) ([]domain.Contributor, error) {
	return TopContributors(ctx, db, limit)
}

func (Store) GetIdempotency(ctx context.Context, db *gorm.DB, userID, scope, key string, now time.Time) (*domain.Idempotency, error) {
	return GetIdempotency(ctx, db, userID, scope, key, now)
}

func (Store) CreateIdempotency(ctx context.Context, db *gorm.DB, userID, scope, key, entryID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	return CreateIdempotency(ctx, db, userID, scope, key, entryID, status, ttl)
}

func (Store) UpsertUser(ctx context.Context, db *gorm.DB, provider, subject, email string) (*domain.User, error) {
	return UpsertUser(ctx, db, provider, subject, email)
}

func (Store) GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	return GetUser(ctx, db, id)
}

func (Store) CreateSession(ctx context.Context, db *gorm.DB, userID string, ttl time.Duration) (*domain.Session, error) {
	return CreateSession(ctx, db, userID, ttl)
}

func (Store) GetSession(ctx context.Context, db *gorm.DB, id string) (*domain.Session, error) {
	return GetSession(ctx, db, id)
}

func (Store) RevokeSession(ctx context.Context, db *gorm.DB, id string, now time.Time) error {
	return RevokeSession(ctx, db, id, now)
}
