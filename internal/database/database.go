package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"github.com/vladimiradmaev/vaidya-health/internal/config"
	"github.com/vladimiradmaev/vaidya-health/internal/database/migrations"
	"github.com/vladimiradmaev/vaidya-health/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects to the configured database and brings the schema up to date.
func Open(cfg config.DBConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("Database connection established and migrations completed", "driver", cfg.Driver)
	return db, nil
}

func dialectorFor(cfg config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		return sqlite.Open(cfg.Path), nil
	case config.DriverPostgres, "":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate creates the tables and then applies the SQL migrations, which only
// add indexes on top of them.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models()...); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	registry := migrations.NewRegistry()
	if err := registry.LoadSQLMigrations(migrations.Files, "sql"); err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	if err := registry.Run(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
