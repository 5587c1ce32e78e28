// Package testutil opens throwaway SQLite databases for tests.
package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"fixify/internal/database"
	"fixify/internal/repository"

	"gorm.io/gorm"
)

// NewDB returns a migrated in-memory database private to t.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_", "#", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:fixify_%s?mode=memory&cache=shared", name)

	db, err := database.Connect(dsn, database.Silent())
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	if err := repository.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate db: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
