package entity

import (
	"fmt"
	"strings"

	apperrors "github.com/TLMHoang/TriviaAPI/internal/pkg/errors"
)

// Question представляет вопрос викторины
type Question struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Question   string `gorm:"type:text;not null" json:"question"`
	Answer     string `gorm:"type:text;not null" json:"answer"`
	Category   uint   `gorm:"not null;index" json:"category"` // ID категории, без внешнего ключа
	Difficulty int    `gorm:"not null" json:"difficulty"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// Validate проверяет, что заполнены все четыре поля.
// Категории нумеруются с 1, сложность - рейтинг от 1, поэтому ноль недопустим.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Question) == "" {
		return fmt.Errorf("%w: question text is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(q.Answer) == "" {
		return fmt.Errorf("%w: answer is required", apperrors.ErrValidation)
	}
	if q.Category < 1 {
		return fmt.Errorf("%w: category is required", apperrors.ErrValidation)
	}
	if q.Difficulty < 1 {
		return fmt.Errorf("%w: difficulty is required", apperrors.ErrValidation)
	}
	return nil
}

// MatchesCategory сообщает, подходит ли вопрос под фильтр викторины.
// categoryID == 0 означает «все категории».
func (q *Question) MatchesCategory(categoryID uint) bool {
	return categoryID == 0 || q.Category == categoryID
}
