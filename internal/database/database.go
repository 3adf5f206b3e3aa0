package database

import (
	"context"
	"fmt"

	"inventaris/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported values for DATABASE_DRIVER.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Open connects to the configured database. TranslateError is enabled so the
// repositories can recognise unique index violations.
func Open(driver, dsn string, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	level := logger.Warn
	if debug {
		level = logger.Info
	}
	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Petugas{}, &models.Jenis{}, &models.Ruang{}, &models.Inventaris{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// SeedReference inserts a starter set of jenis and ruang when both tables are empty.
func SeedReference(ctx context.Context, db *gorm.DB) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Jenis{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count jenis: %w", err)
	}
	if count == 0 {
		jenis := []models.Jenis{{NamaJenis: "Elektronik"}, {NamaJenis: "Mebel"}, {NamaJenis: "Alat Tulis"}}
		if err := db.WithContext(ctx).Create(&jenis).Error; err != nil {
			return fmt.Errorf("failed to seed jenis: %w", err)
		}
	}

	if err := db.WithContext(ctx).Model(&models.Ruang{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count ruang: %w", err)
	}
	if count == 0 {
		ruang := []models.Ruang{{NamaRuang: "Gudang"}, {NamaRuang: "Ruang Guru"}, {NamaRuang: "Laboratorium"}}
		if err := db.WithContext(ctx).Create(&ruang).Error; err != nil {
			return fmt.Errorf("failed to seed ruang: %w", err)
		}
	}
	return nil
}
