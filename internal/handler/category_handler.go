package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/TLMHoang/TriviaAPI/internal/handler/dto"
	"github.com/TLMHoang/TriviaAPI/internal/service"
)

// CategoryHandler обрабатывает запросы категорий
type CategoryHandler struct {
	categoryService *service.CategoryService
	questionService *service.QuestionService
	logger          *zap.Logger
}

// NewCategoryHandler создает новый обработчик категорий
func NewCategoryHandler(
	categoryService *service.CategoryService,
	questionService *service.QuestionService,
	logger *zap.Logger,
) *CategoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryHandler{
		categoryService: categoryService,
		questionService: questionService,
		logger:          logger,
	}
}

// ListCategories возвращает все категории в виде {id: type}
// GET /categories
func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewCategoriesResponse(categories))
}

// QuestionsByCategory возвращает все вопросы категории
// GET /categories/:id/questions
func (h *CategoryHandler) QuestionsByCategory(c *gin.Context) {
	categoryID := c.MustGet("categoryID").(uint)

	result, err := h.questionService.QuestionsByCategory(c.Request.Context(), categoryID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionListResponse(result))
}
