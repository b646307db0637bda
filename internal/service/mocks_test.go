package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/TLMHoang/TriviaAPI/internal/domain/entity"
)

// ============================================================================
// Моки репозиториев
// ============================================================================

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(ctx context.Context, question *entity.Question) error {
	args := m.Called(ctx, question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(ctx context.Context, id uint) (*entity.Question, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockQuestionRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockQuestionRepository) ListPage(ctx context.Context, limit, offset int) ([]entity.Question, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) ListAll(ctx context.Context) ([]entity.Question, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) Search(ctx context.Context, term string) ([]entity.Question, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) ListByCategory(ctx context.Context, categoryID uint) ([]entity.Question, error) {
	args := m.Called(ctx, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) ListCandidates(ctx context.Context, categoryID uint, excludeIDs []uint) ([]entity.Question, error) {
	args := m.Called(ctx, categoryID, excludeIDs)
	if fn, ok := args.Get(0).(func(context.Context, uint, []uint) []entity.Question); ok {
		return fn(ctx, categoryID, excludeIDs), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

// MockCategoryRepository реализует repository.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]entity.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id uint) (*entity.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Category), args.Error(1)
}

// ============================================================================
// Тестовые данные
// ============================================================================

func testCategories() []entity.Category {
	return []entity.Category{
		{ID: 1, Type: "Science"},
		{ID: 2, Type: "Art"},
		{ID: 3, Type: "Geography"},
	}
}

func makeQuestions(fromID, n int) []entity.Question {
	questions := make([]entity.Question, 0, n)
	for i := 0; i < n; i++ {
		id := uint(fromID + i)
		questions = append(questions, entity.Question{
			ID:         id,
			Question:   "Question?",
			Answer:     "Answer",
			Category:   id%3 + 1,
			Difficulty: 1,
		})
	}
	return questions
}
