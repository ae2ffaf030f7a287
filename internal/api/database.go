package api

import (
	"fmt"
	"log"

	"github.com/ieeespac/spac_site/config"
	"github.com/ieeespac/spac_site/internal/domain"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// same id across every instance so only one of them migrates at a time
const migrateLockID int64 = 20220122

func openDatabase(cfg config.Config) (*gorm.DB, error) {
	switch cfg.DatabaseDriver {
	case "postgres":
		db, err := gorm.Open(postgres.New(postgres.Config{
			DSN:                  cfg.DatabaseDSN,
			PreferSimpleProtocol: true,
		}), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		return db, migrateLocked(db)
	case "sqlite", "":
		db, err := gorm.Open(sqlite.Open(cfg.DatabaseDSN), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		return db, migrate(db)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DatabaseDriver)
	}
}

func migrateLocked(db *gorm.DB) error {
	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		return fmt.Errorf("migration lock: %w", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	return migrate(db)
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.Registration{}); err != nil {
		return fmt.Errorf("migration: %w", err)
	}
	log.Println("migration successful")
	return nil
}
