package database

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"feabscopy/internal/config"
	"feabscopy/internal/models"
)

// NewDatabase creates a new database connection and performs auto-migration.
func NewDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db, cfg); err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates the schema and seeds the settings row and the
// demo user. Existing data is never dropped: the trade log is append-only
// and must survive restarts.
func Migrate(db *gorm.DB, cfg *config.Config) error {
	if err := db.AutoMigrate(
		&models.TradeRecord{},
		&models.CopyAccount{},
		&models.User{},
		&models.PlatformSettings{},
	); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	if err := seedSettings(db, cfg); err != nil {
		return err
	}
	return seedDemoUser(db)
}

// seedSettings inserts the singleton settings row from config defaults if
// it does not exist yet. An existing row wins: the admin may have edited
// it at runtime.
func seedSettings(db *gorm.DB, cfg *config.Config) error {
	var settings models.PlatformSettings
	err := db.First(&settings).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to load platform settings: %w", err)
	}

	settings = models.PlatformSettings{
		NgnToUsd:              decimal.NewFromFloat(cfg.Platform.NgnToUsd),
		UsdToNgn:              decimal.NewFromFloat(cfg.Platform.UsdToNgn),
		PerformanceFeePercent: decimal.NewFromFloat(cfg.Platform.PerformanceFeePercent),
	}
	if err := db.Create(&settings).Error; err != nil {
		return fmt.Errorf("failed to seed platform settings: %w", err)
	}
	return nil
}

// seedDemoUser creates the initial admin user when the users table is
// empty, mirroring the demo platform's default profile.
func seedDemoUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	user := models.User{
		ID:                uuid.NewString(),
		FirstName:         "Admin",
		LastName:          "User",
		Email:             "admin@feabscopy.com",
		IsAdmin:           true,
		NgnBalance:        decimal.NewFromInt(1000000),
		UsdBalance:        decimal.NewFromInt(50000),
		AccumulatedProfit: decimal.Zero,
	}
	if err := db.Create(&user).Error; err != nil {
		return fmt.Errorf("failed to seed demo user: %w", err)
	}
	return nil
}
