package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TLMHoang/TriviaAPI/internal/handler/dto"
	"github.com/TLMHoang/TriviaAPI/internal/service"
)

// QuizHandler обрабатывает запросы игры в викторину
type QuizHandler struct {
	quizService *service.QuizService
	logger      *zap.Logger
}

// NewQuizHandler создает новый обработчик викторины
func NewQuizHandler(quizService *service.QuizService, logger *zap.Logger) *QuizHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizHandler{
		quizService: quizService,
		logger:      logger,
	}
}

// NextQuestion возвращает случайный ещё не заданный вопрос.
// Когда вопросы закончились, question равен null.
// POST /quizzes
func (h *QuizHandler) NextQuestion(c *gin.Context) {
	var req dto.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("invalid quiz payload", zap.Error(err))
		abortWithStatus(c, http.StatusNotFound)
		return
	}

	categoryID, ok := req.CategoryID()
	if !ok {
		abortWithStatus(c, http.StatusNotFound)
		return
	}

	question, err := h.quizService.NextQuestion(c.Request.Context(), categoryID, req.PreviousQuestions)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(question))
}
