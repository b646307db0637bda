package service

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/TLMHoang/TriviaAPI/internal/domain/entity"
	"github.com/TLMHoang/TriviaAPI/internal/domain/repository"
	apperrors "github.com/TLMHoang/TriviaAPI/internal/pkg/errors"
)

// QuestionsPerPage - фиксированный размер страницы списка вопросов
const QuestionsPerPage = 10

// maxPage - последняя страница, смещение которой ещё помещается в int
const maxPage = math.MaxInt/QuestionsPerPage + 1

// QuestionPage - результат выборки вопросов вместе с метаданными ответа
type QuestionPage struct {
	Questions        []entity.Question
	TotalQuestions   int64 // всего вопросов в базе, без учёта фильтра
	CurrentQuestions int   // сколько вопросов в этой выборке
	Categories       []entity.Category
	CurrentCategory  *string // nil для выборок без категории
}

// NewQuestionInput - данные для создания вопроса
type NewQuestionInput struct {
	Question   string
	Answer     string
	Category   int
	Difficulty int
}

// QuestionService реализует выборку, поиск, пагинацию, создание и удаление вопросов
type QuestionService struct {
	questionRepo repository.QuestionRepository
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(
	questionRepo repository.QuestionRepository,
	categoryRepo repository.CategoryRepository,
	logger *zap.Logger,
) *QuestionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionService{
		questionRepo: questionRepo,
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

// ListQuestions возвращает страницу page (с 1) вопросов, упорядоченных по id.
// Пустая страница - ошибка ErrNotFound, в том числе первая страница пустой базы.
func (s *QuestionService) ListQuestions(ctx context.Context, page int) (*QuestionPage, error) {
	if page < 1 || page > maxPage {
		return nil, apperrors.Translate(apperrors.ErrNotFound, fmt.Sprintf("page %d", page), nil)
	}

	start := (page - 1) * QuestionsPerPage
	questions, err := s.questionRepo.ListPage(ctx, QuestionsPerPage, start)
	if err != nil {
		s.logger.Error("failed to list questions", zap.Int("page", page), zap.Error(err))
		return nil, apperrors.Translate(apperrors.ErrNotFound, "list questions", err)
	}
	if len(questions) == 0 {
		return nil, apperrors.Translate(apperrors.ErrNotFound, fmt.Sprintf("page %d is empty", page), nil)
	}

	return s.buildPage(ctx, questions, nil)
}

// SearchQuestions возвращает все вопросы, текст которых содержит term без учёта регистра.
// Пустой term совпадает со всеми вопросами; отсутствие совпадений - ErrNotFound.
func (s *QuestionService) SearchQuestions(ctx context.Context, term string) (*QuestionPage, error) {
	questions, err := s.questionRepo.Search(ctx, term)
	if err != nil {
		s.logger.Error("failed to search questions", zap.String("term", term), zap.Error(err))
		return nil, apperrors.Translate(apperrors.ErrNotFound, "search questions", err)
	}
	if len(questions) == 0 {
		return nil, apperrors.Translate(apperrors.ErrNotFound, fmt.Sprintf("no questions match %q", term), nil)
	}

	return s.buildPage(ctx, questions, nil)
}

// QuestionsByCategory возвращает все вопросы категории.
// Несуществующая категория - ErrNotFound; пустая категория при этом не ошибка.
func (s *QuestionService) QuestionsByCategory(ctx context.Context, categoryID uint) (*QuestionPage, error) {
	category, err := s.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("failed to get category", zap.Uint("category_id", categoryID), zap.Error(err))
		}
		return nil, apperrors.Translate(apperrors.ErrNotFound, fmt.Sprintf("category %d", categoryID), err)
	}

	questions, err := s.questionRepo.ListByCategory(ctx, category.ID)
	if err != nil {
		s.logger.Error("failed to list questions by category", zap.Uint("category_id", categoryID), zap.Error(err))
		return nil, apperrors.Translate(apperrors.ErrNotFound, fmt.Sprintf("questions of category %d", categoryID), err)
	}

	currentCategory := category.Type
	return s.buildPage(ctx, questions, &currentCategory)
}

// CreateQuestion сохраняет новый вопрос и возвращает его ID.
// Любая ошибка (валидация или хранилище) - ErrUnprocessable.
func (s *QuestionService) CreateQuestion(ctx context.Context, input NewQuestionInput) (uint, error) {
	if input.Category < 0 {
		return 0, apperrors.Translate(apperrors.ErrUnprocessable, "create question", fmt.Errorf("negative category %d", input.Category))
	}
	question := &entity.Question{
		Question:   input.Question,
		Answer:     input.Answer,
		Category:   uint(input.Category),
		Difficulty: input.Difficulty,
	}
	if err := question.Validate(); err != nil {
		return 0, apperrors.Translate(apperrors.ErrUnprocessable, "create question", err)
	}

	if err := s.questionRepo.Create(ctx, question); err != nil {
		s.logger.Error("failed to create question", zap.Error(err))
		return 0, apperrors.Translate(apperrors.ErrUnprocessable, "create question", err)
	}

	s.logger.Info("question created", zap.Uint("question_id", question.ID), zap.Uint("category_id", question.Category))
	return question.ID, nil
}

// DeleteQuestion удаляет вопрос по ID.
// Все ошибки удаления, включая отсутствие вопроса, - ErrUnprocessable (422), а не 404.
func (s *QuestionService) DeleteQuestion(ctx context.Context, id uint) (uint, error) {
	op := fmt.Sprintf("delete question %d", id)

	if _, err := s.questionRepo.GetByID(ctx, id); err != nil {
		return 0, apperrors.Translate(apperrors.ErrUnprocessable, op, err)
	}
	if err := s.questionRepo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete question", zap.Uint("question_id", id), zap.Error(err))
		return 0, apperrors.Translate(apperrors.ErrUnprocessable, op, err)
	}

	s.logger.Info("question deleted", zap.Uint("question_id", id))
	return id, nil
}

// ExportQuestions возвращает все вопросы и категории для выгрузки в файл
func (s *QuestionService) ExportQuestions(ctx context.Context) ([]entity.Question, []entity.Category, error) {
	questions, err := s.questionRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("failed to list questions for export", zap.Error(err))
		return nil, nil, apperrors.Translate(apperrors.ErrNotFound, "export questions", err)
	}
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list categories for export", zap.Error(err))
		return nil, nil, apperrors.Translate(apperrors.ErrNotFound, "export categories", err)
	}
	return questions, categories, nil
}

// buildPage дополняет выборку общим числом вопросов и списком категорий
func (s *QuestionService) buildPage(ctx context.Context, questions []entity.Question, currentCategory *string) (*QuestionPage, error) {
	total, err := s.questionRepo.Count(ctx)
	if err != nil {
		s.logger.Error("failed to count questions", zap.Error(err))
		return nil, apperrors.Translate(apperrors.ErrNotFound, "count questions", err)
	}

	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list categories", zap.Error(err))
		return nil, apperrors.Translate(apperrors.ErrNotFound, "list categories", err)
	}

	return &QuestionPage{
		Questions:        questions,
		TotalQuestions:   total,
		CurrentQuestions: len(questions),
		Categories:       categories,
		CurrentCategory:  currentCategory,
	}, nil
}
