package infra

import (
	"fmt"

	"bisnispintar/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a GORM connection to postgres and makes sure the
// item_snapshots table exists. Only the postgres storage driver needs it.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	// one process, one row: a small pool is plenty
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetMaxIdleConns(2)

	if err := RunMigrations(db); err != nil {
		return nil, err
	}
	return db, nil
}

// RunMigrations creates or updates the snapshot table. Safe to call repeatedly.
func RunMigrations(db *gorm.DB) error {
	if err := db.AutoMigrate(&model.ItemSnapshot{}); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return nil
}
