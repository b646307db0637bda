package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/TLMHoang/TriviaAPI/internal/domain/entity"
	apperrors "github.com/TLMHoang/TriviaAPI/internal/pkg/errors"
)

// CategoryRepo реализует repository.CategoryRepository
type CategoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepo создает новый репозиторий категорий
func NewCategoryRepo(db *gorm.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// List возвращает все категории, упорядоченные по id
func (r *CategoryRepo) List(ctx context.Context) ([]entity.Category, error) {
	var categories []entity.Category
	err := r.db.WithContext(ctx).Order("id").Find(&categories).Error
	return categories, err
}

// GetByID возвращает категорию по ID
func (r *CategoryRepo) GetByID(ctx context.Context, id uint) (*entity.Category, error) {
	var category entity.Category
	err := r.db.WithContext(ctx).First(&category, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}
