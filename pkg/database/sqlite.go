package database

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteDriverName - драйвер go-sqlite3 с дополнительными SQL-функциями приложения
const SQLiteDriverName = "sqlite3_trivia"

// SQLiteLowerFunc - Unicode-aware аналог LOWER. Встроенный LOWER в SQLite меняет регистр только у ASCII.
const SQLiteLowerFunc = "unicode_lower"

func init() {
	sql.Register(SQLiteDriverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc(SQLiteLowerFunc, strings.ToLower, true)
		},
	})
}

// NewSQLiteDB открывает базу SQLite (локальная разработка и тесты).
// Для ":memory:" пул ограничен одним соединением, иначе каждое соединение получит свою пустую базу.
func NewSQLiteDB(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: SQLiteDriverName, DSN: path}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %q: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}
