package postgres

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/TLMHoang/TriviaAPI/internal/config"
	"github.com/TLMHoang/TriviaAPI/internal/domain/entity"
	"github.com/TLMHoang/TriviaAPI/pkg/database"
)

// newTestDB поднимает SQLite в памяти со схемой приложения.
// Репозитории используют только переносимый SQL, поэтому тесты не требуют PostgreSQL.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Open(config.DatabaseConfig{Driver: config.DriverSQLite, Path: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func seedCategories(t *testing.T, db *gorm.DB) []entity.Category {
	t.Helper()
	categories := []entity.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
	}
	require.NoError(t, db.Create(&categories).Error)
	return categories
}

// seedQuestions создает n вопросов, распределяя их по категориям 1..3
func seedQuestions(t *testing.T, db *gorm.DB, n int) []entity.Question {
	t.Helper()
	questions := make([]entity.Question, 0, n)
	for i := 1; i <= n; i++ {
		q := entity.Question{
			Question:   fmt.Sprintf("Question number %d?", i),
			Answer:     fmt.Sprintf("Answer %d", i),
			Category:   uint((i-1)%3 + 1),
			Difficulty: (i-1)%5 + 1,
		}
		require.NoError(t, db.Create(&q).Error)
		questions = append(questions, q)
	}
	return questions
}

var bg = context.Background()
