package dto

import (
	"github.com/TLMHoang/TriviaAPI/internal/domain/entity"
	"github.com/TLMHoang/TriviaAPI/internal/service"
)

// QuestionResponse представляет вопрос в формате для ответа клиенту
type QuestionResponse struct {
	ID         uint   `json:"id"`
	Question   string `json:"question"`
	Answer     string `json:"answer"`
	Category   uint   `json:"category"`
	Difficulty int    `json:"difficulty"`
}

// CategoryResponse представляет категорию в списках вопросов
type CategoryResponse struct {
	ID   uint   `json:"id"`
	Type string `json:"type"`
}

// QuestionListResponse - ответ для списка, поиска и выборки по категории
type QuestionListResponse struct {
	Success          bool               `json:"success"`
	Questions        []QuestionResponse `json:"questions"`
	TotalQuestions   int64              `json:"total_questions"`
	CurrentQuestions int                `json:"current_questions"`
	Categories       []CategoryResponse `json:"categories"`
	CurrentCategory  *string            `json:"current_category"`
}

// CategoriesResponse - ответ GET /categories: {id: type}
type CategoriesResponse struct {
	Success    bool            `json:"success"`
	Categories map[uint]string `json:"categories"`
}

// CreateQuestionRequest - тело POST /questions. Все четыре поля обязательны,
// категория и сложность начинаются с 1.
type CreateQuestionRequest struct {
	Question   string  `json:"question" binding:"required"`
	Answer     string  `json:"answer" binding:"required"`
	Category   FlexInt `json:"category" binding:"required,min=1"`
	Difficulty FlexInt `json:"difficulty" binding:"required,min=1"`
}

// CreateQuestionResponse - ответ на создание вопроса
type CreateQuestionResponse struct {
	Success bool `json:"success"`
	Created uint `json:"created"`
}

// DeleteQuestionResponse - ответ на удаление вопроса
type DeleteQuestionResponse struct {
	Success bool `json:"success"`
	Deleted uint `json:"deleted"`
}

// SearchQuestionsRequest - тело POST /questions/search. Пустая строка совпадает со всеми вопросами.
type SearchQuestionsRequest struct {
	SearchTerm string `json:"searchTerm"`
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(q *entity.Question) QuestionResponse {
	return QuestionResponse{
		ID:         q.ID,
		Question:   q.Question,
		Answer:     q.Answer,
		Category:   q.Category,
		Difficulty: q.Difficulty,
	}
}

// NewCategoryList преобразует категории в список {id, type}
func NewCategoryList(categories []entity.Category) []CategoryResponse {
	list := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		list[i] = CategoryResponse{ID: c.ID, Type: c.Type}
	}
	return list
}

// NewQuestionListResponse создает ответ из результата выборки сервиса
func NewQuestionListResponse(page *service.QuestionPage) *QuestionListResponse {
	questions := make([]QuestionResponse, len(page.Questions))
	for i := range page.Questions {
		questions[i] = NewQuestionResponse(&page.Questions[i])
	}
	return &QuestionListResponse{
		Success:          true,
		Questions:        questions,
		TotalQuestions:   page.TotalQuestions,
		CurrentQuestions: page.CurrentQuestions,
		Categories:       NewCategoryList(page.Categories),
		CurrentCategory:  page.CurrentCategory,
	}
}

// NewCategoriesResponse создает ответ GET /categories
func NewCategoriesResponse(categories []entity.Category) *CategoriesResponse {
	return &CategoriesResponse{
		Success:    true,
		Categories: entity.CategoryTypes(categories),
	}
}
