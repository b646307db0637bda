package postgres

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/TLMHoang/TriviaAPI/internal/domain/entity"
	apperrors "github.com/TLMHoang/TriviaAPI/internal/pkg/errors"
	"github.com/TLMHoang/TriviaAPI/pkg/database"
)

// likeEscaper экранирует спецсимволы LIKE, чтобы поисковая строка совпадала буквально
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос, ID назначается базой
func (r *QuestionRepo) Create(ctx context.Context, question *entity.Question) error {
	return r.db.WithContext(ctx).Create(question).Error
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(ctx context.Context, id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.WithContext(ctx).First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Question{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Count возвращает общее количество вопросов
func (r *QuestionRepo) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.Question{}).Count(&count).Error
	return count, err
}

// ListPage возвращает срез вопросов по id
func (r *QuestionRepo) ListPage(ctx context.Context, limit, offset int) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).Order("id").Limit(limit).Offset(offset).Find(&questions).Error
	return questions, err
}

// ListAll возвращает все вопросы по id
func (r *QuestionRepo) ListAll(ctx context.Context) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).Order("id").Find(&questions).Error
	return questions, err
}

// Search ищет вопросы, содержащие term (без учёта регистра).
// PostgreSQL сравнивает через ILIKE. В SQLite обе стороны приводятся к нижнему регистру
// функцией database.SQLiteLowerFunc: встроенный LOWER знает только ASCII.
func (r *QuestionRepo) Search(ctx context.Context, term string) ([]entity.Question, error) {
	var questions []entity.Question
	query := r.db.WithContext(ctx)

	switch r.db.Dialector.Name() {
	case "postgres":
		pattern := "%" + likeEscaper.Replace(term) + "%"
		query = query.Where(`question ILIKE ? ESCAPE '\'`, pattern)
	case "sqlite":
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		query = query.Where(database.SQLiteLowerFunc+`(question) LIKE ? ESCAPE '\'`, pattern)
	default:
		pattern := "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
		query = query.Where(`LOWER(question) LIKE ? ESCAPE '\'`, pattern)
	}

	err := query.Order("id").Find(&questions).Error
	return questions, err
}

// ListByCategory возвращает вопросы категории
func (r *QuestionRepo) ListByCategory(ctx context.Context, categoryID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.WithContext(ctx).Where("category = ?", categoryID).Order("id").Find(&questions).Error
	return questions, err
}

// ListCandidates возвращает вопросы для викторины за вычетом уже показанных
func (r *QuestionRepo) ListCandidates(ctx context.Context, categoryID uint, excludeIDs []uint) ([]entity.Question, error) {
	var questions []entity.Question

	query := r.db.WithContext(ctx).Model(&entity.Question{})
	if categoryID != 0 {
		query = query.Where("category = ?", categoryID)
	}
	// Исключаем уже показанные в текущей викторине вопросы
	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	err := query.Order("id").Find(&questions).Error
	return questions, err
}
