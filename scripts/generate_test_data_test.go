package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mindfulme/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := db.Open(filepath.Join(t.TempDir(), "seed.db"), db.WithLogLevel(logger.Silent))
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	t.Cleanup(func() { db.Close(gdb) })
	return gdb
}

func TestSeedDemoDataIsIdempotent(t *testing.T) {
	gdb := setupSeedTestDB(t)
	today := time.Date(2024, 9, 1, 8, 0, 0, 0, time.Local)

	habits, activities, err := seedDemoData(gdb, today, 12)
	if err != nil {
		t.Fatalf("seedDemoData returned error: %v", err)
	}
	if habits != len(demoHabits) {
		t.Fatalf("expected %d habits, got %d", len(demoHabits), habits)
	}

	// Meditate 12 条，Drink Water 每 3 天漏 1 天为 8 条，Read 20 Pages 每 4 天漏 1 天为 9 条
	if activities != 12+8+9 {
		t.Fatalf("unexpected activity count: %d", activities)
	}

	habits, activities, err = seedDemoData(gdb, today, 12)
	if err != nil {
		t.Fatalf("second seedDemoData returned error: %v", err)
	}
	if habits != 0 || activities != 0 {
		t.Fatalf("expected rerun to insert nothing, got habits=%d activities=%d", habits, activities)
	}

	var total int64
	gdb.Model(&db.Activity{}).Count(&total)
	if total != 29 {
		t.Fatalf("expected 29 activity rows, found %d", total)
	}
}
