// Package dbtest opens a migrated in-memory SQLite database for tests.
package dbtest

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/models"
)

func New(t testing.TB) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

// SeedProvider inserts a provider with a working window on one weekday.
func SeedProvider(
	t testing.TB,
	gdb *gorm.DB,
	name string,
	weekday int,
	start, end string,
) *models.Provider {
	t.Helper()

	p := &models.Provider{Name: name, Active: true}
	if err := gdb.Create(p).Error; err != nil {
		t.Fatalf("seed provider: %v", err)
	}

	ws := &models.WeeklySchedule{
		ProviderID:  p.ID,
		Weekday:     weekday,
		StartTime:   start,
		EndTime:     end,
		IsAvailable: true,
	}
	if err := gdb.Create(ws).Error; err != nil {
		t.Fatalf("seed schedule: %v", err)
	}
	return p
}

func SeedService(t testing.TB, gdb *gorm.DB, name string, duration int, price float64) *models.Service {
	t.Helper()

	s := &models.Service{Name: name, DurationMin: duration, Price: price, Active: true}
	if err := gdb.Create(s).Error; err != nil {
		t.Fatalf("seed service: %v", err)
	}
	return s
}
