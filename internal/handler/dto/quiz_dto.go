package dto

import (
	"bytes"
	"encoding/json"

	"github.com/TLMHoang/TriviaAPI/internal/domain/entity"
)

// QuizCategory - выбранная категория викторины; id 0 означает «все категории».
// Объект без id считается некорректным запросом.
type QuizCategory struct {
	ID   *FlexInt `json:"id" binding:"required"`
	Type string   `json:"type"`
}

// QuizRequest - тело POST /quizzes. Без quiz_category викторина идёт по всем категориям,
// а явный "quiz_category": null считается некорректным запросом.
type QuizRequest struct {
	PreviousQuestions []uint        `json:"previous_questions"`
	QuizCategory      *QuizCategory `json:"quiz_category"`

	nullCategory bool
}

// UnmarshalJSON отличает отсутствующий quiz_category от null
func (r *QuizRequest) UnmarshalJSON(data []byte) error {
	type plain QuizRequest
	var raw struct {
		plain
		QuizCategory json.RawMessage `json:"quiz_category"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = QuizRequest(raw.plain)
	if raw.QuizCategory == nil {
		return nil
	}
	if bytes.Equal(bytes.TrimSpace(raw.QuizCategory), []byte("null")) {
		r.nullCategory = true
		return nil
	}

	var category QuizCategory
	if err := json.Unmarshal(raw.QuizCategory, &category); err != nil {
		return err
	}
	r.QuizCategory = &category
	return nil
}

// CategoryID возвращает выбранную категорию и false, если id отсутствует или отрицателен
// либо quiz_category равен null
func (r *QuizRequest) CategoryID() (uint, bool) {
	if r.nullCategory {
		return 0, false
	}
	if r.QuizCategory == nil {
		return 0, true
	}
	if r.QuizCategory.ID == nil || r.QuizCategory.ID.Int() < 0 {
		return 0, false
	}
	return uint(r.QuizCategory.ID.Int()), true
}

// QuizResponse - ответ POST /quizzes; question равен null, когда вопросы закончились
type QuizResponse struct {
	Success  bool              `json:"success"`
	Question *QuestionResponse `json:"question"`
}

// NewQuizResponse создает ответ викторины
func NewQuizResponse(q *entity.Question) *QuizResponse {
	resp := &QuizResponse{Success: true}
	if q != nil {
		question := NewQuestionResponse(q)
		resp.Question = &question
	}
	return resp
}
