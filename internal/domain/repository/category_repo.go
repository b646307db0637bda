package repository

import (
	"context"

	"github.com/TLMHoang/TriviaAPI/internal/domain/entity"
)

// CategoryRepository определяет методы для чтения категорий
type CategoryRepository interface {
	List(ctx context.Context) ([]entity.Category, error)
	GetByID(ctx context.Context, id uint) (*entity.Category, error)
}
