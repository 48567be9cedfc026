// Package testutil builds throwaway stores for package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// weaponsDDL mirrors the PostgreSQL weapons table with SQLite column types.
const weaponsDDL = `CREATE TABLE weapons (
	id TEXT PRIMARY KEY,
	owner_id TEXT,
	prompt TEXT NOT NULL,
	model_url TEXT,
	model_path TEXT,
	bug_level REAL,
	pitch_text TEXT,
	sale_success BOOLEAN,
	tripo_task_id TEXT,
	metadata JSON,
	share_id TEXT UNIQUE,
	created_at DATETIME NOT NULL,
	shared_at DATETIME
)`

// NewWeaponDB opens a private in-memory SQLite database holding an empty
// weapons table. A single connection keeps every statement on the same
// memory database.
func NewWeaponDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sqlite handle: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Exec(weaponsDDL).Error; err != nil {
		t.Fatalf("create weapons table: %v", err)
	}
	return db
}
