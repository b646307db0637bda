package service

import (
	"context"
	"math/rand"

	"go.uber.org/zap"

	"github.com/TLMHoang/TriviaAPI/internal/domain/entity"
	"github.com/TLMHoang/TriviaAPI/internal/domain/repository"
	apperrors "github.com/TLMHoang/TriviaAPI/internal/pkg/errors"
)

// QuizService выбирает следующий вопрос викторины
type QuizService struct {
	questionRepo repository.QuestionRepository
	logger       *zap.Logger
	// pick возвращает случайное число в [0, n); подменяется в тестах
	pick func(n int) int
}

// NewQuizService создает новый сервис викторины
func NewQuizService(questionRepo repository.QuestionRepository, logger *zap.Logger) *QuizService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{
		questionRepo: questionRepo,
		logger:       logger,
		pick:         rand.Intn,
	}
}

// NextQuestion равновероятно выбирает вопрос, которого нет в previousIDs.
// categoryID == 0 - любая категория. Когда вопросы закончились, возвращает (nil, nil):
// это штатный сигнал «вопросов больше нет», а не ошибка.
func (s *QuizService) NextQuestion(ctx context.Context, categoryID uint, previousIDs []uint) (*entity.Question, error) {
	candidates, err := s.questionRepo.ListCandidates(ctx, categoryID, previousIDs)
	if err != nil {
		s.logger.Error("failed to list quiz candidates",
			zap.Uint("category_id", categoryID),
			zap.Int("previous_count", len(previousIDs)),
			zap.Error(err))
		return nil, apperrors.Translate(apperrors.ErrNotFound, "quiz candidates", err)
	}

	if len(candidates) == 0 {
		s.logger.Debug("quiz exhausted", zap.Uint("category_id", categoryID), zap.Int("previous_count", len(previousIDs)))
		return nil, nil
	}

	question := candidates[s.pick(len(candidates))]
	return &question, nil
}
