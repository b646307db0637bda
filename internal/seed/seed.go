// Package seed загружает начальный набор категорий и вопросов из JSON-файла.
package seed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/TLMHoang/TriviaAPI/internal/domain/entity"
)

// Fixture - содержимое файла с начальными данными
type Fixture struct {
	Categories []entity.Category `json:"categories"`
	Questions  []entity.Question `json:"questions"`
}

// Load читает и проверяет файл с начальными данными
func Load(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %q: %w", path, err)
	}

	var fx Fixture
	if err := json.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %q: %w", path, err)
	}
	if err := fx.Validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// Validate проверяет категории (id > 0, без повторов) и то,
// что каждый вопрос валиден и ссылается на существующую категорию.
func (fx *Fixture) Validate() error {
	if len(fx.Categories) == 0 {
		return errors.New("fixture has no categories")
	}

	known := make(map[uint]struct{}, len(fx.Categories))
	for _, c := range fx.Categories {
		if c.ID == 0 || c.Type == "" {
			return fmt.Errorf("category %+v: id and type are required", c)
		}
		if _, dup := known[c.ID]; dup {
			return fmt.Errorf("duplicate category id %d", c.ID)
		}
		known[c.ID] = struct{}{}
	}

	for i := range fx.Questions {
		q := &fx.Questions[i]
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question #%d: %w", i+1, err)
		}
		if _, ok := known[q.Category]; !ok {
			return fmt.Errorf("question #%d: unknown category %d", i+1, q.Category)
		}
	}
	return nil
}

// InsertWithGorm записывает категории и вопросы через gorm одной транзакцией.
// Существующие категории с тем же id не перезаписываются, вопросы добавляются.
func InsertWithGorm(ctx context.Context, db *gorm.DB, fx *Fixture, truncate bool) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if truncate {
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.Question{}).Error; err != nil {
				return fmt.Errorf("failed to clear questions: %w", err)
			}
			if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.Category{}).Error; err != nil {
				return fmt.Errorf("failed to clear categories: %w", err)
			}
		}

		categories := append([]entity.Category(nil), fx.Categories...)
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&categories).Error; err != nil {
			return fmt.Errorf("failed to insert categories: %w", err)
		}

		if len(fx.Questions) == 0 {
			return nil
		}
		questions := make([]entity.Question, len(fx.Questions))
		for i, q := range fx.Questions {
			q.ID = 0 // id назначает база
			questions[i] = q
		}
		if err := tx.CreateInBatches(&questions, 100).Error; err != nil {
			return fmt.Errorf("failed to insert questions: %w", err)
		}
		return nil
	})
}

// copyTx - часть pgx.Tx, которая нужна загрузке
type copyTx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

const (
	truncateSQL = "TRUNCATE TABLE questions, categories RESTART IDENTITY"

	// COPY не поддерживает ON CONFLICT, поэтому категории идут через временную таблицу
	createStageSQL = "CREATE TEMP TABLE seed_categories (id bigint NOT NULL, type text NOT NULL) ON COMMIT DROP"
	mergeStageSQL  = "INSERT INTO categories (id, type) SELECT id, type FROM seed_categories ON CONFLICT (id) DO NOTHING"

	advanceCategoriesSeqSQL = "SELECT setval(pg_get_serial_sequence('categories', 'id'), (SELECT MAX(id) FROM categories))"
)

// CopyToPostgres загружает данные в PostgreSQL через COPY в одной транзакции.
// Поведение совпадает с InsertWithGorm: существующие категории остаются как есть,
// вопросы добавляются. С truncate таблицы предварительно очищаются.
func CopyToPostgres(ctx context.Context, pool *pgxpool.Pool, fx *Fixture, truncate bool) (int64, error) {
	tx, err := pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	copied, err := copyFixture(ctx, tx, fx, truncate)
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit seed: %w", err)
	}
	return copied, nil
}

func copyFixture(ctx context.Context, tx copyTx, fx *Fixture, truncate bool) (int64, error) {
	if truncate {
		if _, err := tx.Exec(ctx, truncateSQL); err != nil {
			return 0, fmt.Errorf("failed to truncate tables: %w", err)
		}
	}

	if _, err := tx.Exec(ctx, createStageSQL); err != nil {
		return 0, fmt.Errorf("failed to create categories stage: %w", err)
	}
	if _, err := tx.CopyFrom(ctx,
		pgx.Identifier{"seed_categories"},
		[]string{"id", "type"},
		pgx.CopyFromSlice(len(fx.Categories), func(i int) ([]any, error) {
			c := fx.Categories[i]
			return []any{int64(c.ID), c.Type}, nil
		}),
	); err != nil {
		return 0, fmt.Errorf("failed to copy categories: %w", err)
	}
	if _, err := tx.Exec(ctx, mergeStageSQL); err != nil {
		return 0, fmt.Errorf("failed to merge categories: %w", err)
	}

	if _, err := tx.Exec(ctx, advanceCategoriesSeqSQL); err != nil {
		return 0, fmt.Errorf("failed to advance categories sequence: %w", err)
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"questions"},
		[]string{"question", "answer", "category", "difficulty"},
		pgx.CopyFromSlice(len(fx.Questions), func(i int) ([]any, error) {
			q := fx.Questions[i]
			return []any{q.Question, q.Answer, int64(q.Category), int64(q.Difficulty)}, nil
		}),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to copy questions: %w", err)
	}
	return copied, nil
}

// CountByCategory возвращает число вопросов фикстуры в категории; 0 - все категории
func (fx *Fixture) CountByCategory(categoryID uint) int {
	n := 0
	for i := range fx.Questions {
		if fx.Questions[i].MatchesCategory(categoryID) {
			n++
		}
	}
	return n
}
