package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/TLMHoang/TriviaAPI/internal/domain/entity"
	"github.com/TLMHoang/TriviaAPI/internal/handler/dto"
	"github.com/TLMHoang/TriviaAPI/internal/service"
)

// QuestionHandler обрабатывает запросы, связанные с вопросами
type QuestionHandler struct {
	questionService *service.QuestionService
	logger          *zap.Logger
}

// NewQuestionHandler создает новый обработчик вопросов
func NewQuestionHandler(questionService *service.QuestionService, logger *zap.Logger) *QuestionHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionHandler{
		questionService: questionService,
		logger:          logger,
	}
}

// ListQuestions возвращает страницу вопросов
// GET /questions?page=N
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1 // нечисловой page трактуется как первая страница
	}

	result, err := h.questionService.ListQuestions(c.Request.Context(), page)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionListResponse(result))
}

// CreateQuestion создает новый вопрос
// POST /questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Debug("invalid create question payload", zap.Error(err))
		abortWithStatus(c, http.StatusUnprocessableEntity)
		return
	}

	id, err := h.questionService.CreateQuestion(c.Request.Context(), service.NewQuestionInput{
		Question:   req.Question,
		Answer:     req.Answer,
		Category:   req.Category.Int(),
		Difficulty: req.Difficulty.Int(),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.CreateQuestionResponse{Success: true, Created: id})
}

// DeleteQuestion удаляет вопрос
// DELETE /questions/:id
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.MustGet("questionID").(uint) // Получаем из контекста

	deleted, err := h.questionService.DeleteQuestion(c.Request.Context(), questionID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.DeleteQuestionResponse{Success: true, Deleted: deleted})
}

// SearchQuestions ищет вопросы по подстроке без учёта регистра
// POST /questions/search
func (h *QuestionHandler) SearchQuestions(c *gin.Context) {
	var req dto.SearchQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Debug("invalid search payload", zap.Error(err))
		abortWithStatus(c, http.StatusNotFound)
		return
	}

	result, err := h.questionService.SearchQuestions(c.Request.Context(), req.SearchTerm)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionListResponse(result))
}

// ExportQuestions выгружает все вопросы в CSV или XLSX
// GET /questions/export?format=csv|xlsx
func (h *QuestionHandler) ExportQuestions(c *gin.Context) {
	format := c.DefaultQuery("format", "csv")

	questions, categories, err := h.questionService.ExportQuestions(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	types := entity.CategoryTypes(categories)
	filename := fmt.Sprintf("trivia_questions_%s", time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, questions, types, filename)
	default:
		h.exportCSV(c, questions, types, filename)
	}
}

var exportHeaders = []string{"ID", "Question", "Answer", "Category", "Difficulty"}

// exportCSV выгружает вопросы в CSV с правильным экранированием спецсимволов
func (h *QuestionHandler) exportCSV(c *gin.Context, questions []entity.Question, types map[uint]string, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write(exportHeaders)
	for _, q := range questions {
		writer.Write([]string{
			strconv.FormatUint(uint64(q.ID), 10),
			sanitizeForExcel(q.Question),
			sanitizeForExcel(q.Answer),
			sanitizeForExcel(types[q.Category]),
			strconv.Itoa(q.Difficulty),
		})
	}
}

// exportXLSX выгружает вопросы в Excel с использованием StreamWriter
func (h *QuestionHandler) exportXLSX(c *gin.Context, questions []entity.Question, types map[uint]string, filename string) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Questions"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		h.logger.Error("failed to create xlsx stream writer", zap.Error(err))
		abortWithStatus(c, http.StatusInternalServerError)
		return
	}

	headers := make([]interface{}, len(exportHeaders))
	for i, name := range exportHeaders {
		headers[i] = name
	}
	if err := sw.SetRow("A1", headers); err != nil {
		h.logger.Error("failed to write xlsx headers", zap.Error(err))
	}

	for i, q := range questions {
		rowNum := i + 2 // строка 1 - заголовки
		cell := fmt.Sprintf("A%d", rowNum)
		row := []interface{}{q.ID, sanitizeForExcel(q.Question), sanitizeForExcel(q.Answer), sanitizeForExcel(types[q.Category]), q.Difficulty}
		if err := sw.SetRow(cell, row); err != nil {
			h.logger.Error("failed to write xlsx row", zap.Int("row", rowNum), zap.Error(err))
		}
	}

	if err := sw.Flush(); err != nil {
		h.logger.Error("failed to flush xlsx stream", zap.Error(err))
		abortWithStatus(c, http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))
	if err := f.Write(c.Writer); err != nil {
		h.logger.Error("failed to write xlsx response", zap.Error(err))
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}
