package repository

import (
	"context"

	"github.com/TLMHoang/TriviaAPI/internal/domain/entity"
)

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	Create(ctx context.Context, question *entity.Question) error
	GetByID(ctx context.Context, id uint) (*entity.Question, error)
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)

	// ListPage возвращает срез вопросов, упорядоченных по id
	ListPage(ctx context.Context, limit, offset int) ([]entity.Question, error)
	// ListAll возвращает все вопросы, упорядоченные по id
	ListAll(ctx context.Context) ([]entity.Question, error)
	// Search ищет подстроку term в тексте вопроса без учёта регистра
	Search(ctx context.Context, term string) ([]entity.Question, error)
	ListByCategory(ctx context.Context, categoryID uint) ([]entity.Question, error)
	// ListCandidates возвращает вопросы, не входящие в excludeIDs.
	// categoryID == 0 - без фильтра по категории.
	ListCandidates(ctx context.Context, categoryID uint, excludeIDs []uint) ([]entity.Question, error)
}
