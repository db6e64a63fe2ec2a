// Package testutil provides shared helpers for tests that need a real store.
package testutil

import (
	"path/filepath"
	"testing"

	"go-geoattend/internal/shared/connection"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewSQLiteDB opens a fresh SQLite file under t.TempDir(), migrates the
// given models in order and closes the database when the test ends. The
// pool is limited to one connection, as in production.
func NewSQLiteDB(t testing.TB, models ...any) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(connection.SQLiteDSN(path)), connection.GORMConfig())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if len(models) > 0 {
		if err := db.AutoMigrate(models...); err != nil {
			t.Fatalf("migrate: %v", err)
		}
	}
	return db
}
