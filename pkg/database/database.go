package database

import (
	"database/sql"
	"fmt"

	"gorm.io/gorm"

	"github.com/TLMHoang/TriviaAPI/internal/config"
	"github.com/TLMHoang/TriviaAPI/internal/domain/entity"
)

// Open открывает хранилище согласно database.driver
func Open(cfg config.DatabaseConfig) (*gorm.DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewPostgresDB(cfg)
	case config.DriverSQLite:
		return NewSQLiteDB(cfg.Path)
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}
}

// AutoMigrate создает таблицы categories и questions, если их нет.
// Это начальное создание схемы, а не версионированные миграции.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.Category{}, &entity.Question{}); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// GetSQLDB возвращает базовый *sql.DB из *gorm.DB
func GetSQLDB(gormDB *gorm.DB) (*sql.DB, error) {
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB, nil
}
