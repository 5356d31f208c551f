package repo

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-snitchon-backend/internal/domain"
)

// newRepoDB opens a throwaway file-backed SQLite database and migrates the
// given models. With no models the schema is left empty, which lets tests
// exercise the error paths.
func newRepoDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("repo_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// Ensure the file handle is released before TempDir cleanup (Windows needs this).
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func seedEntry(t *testing.T, db *gorm.DB, id, userID string, createdAt time.Time) domain.Entry {
	t.Helper()
	e := domain.Entry{
		ID:               id,
		UserID:           userID,
		TopicOrPerson:    "topic " + id,
		ShortDescription: "desc " + id,
		URL:              "https://example.org/" + id,
		Details:          "details " + id,
		CreatedAt:        createdAt,
		UpdatedAt:        createdAt,
	}
	if err := db.Create(&e).Error; err != nil {
		t.Fatalf("seed entry %s: %v", id, err)
	}
	return e
}

var bg = context.Background()
