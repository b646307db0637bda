package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/TLMHoang/TriviaAPI/internal/domain/entity"
	"github.com/TLMHoang/TriviaAPI/internal/domain/repository"
	apperrors "github.com/TLMHoang/TriviaAPI/internal/pkg/errors"
)

// CategoryService предоставляет список категорий
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	logger       *zap.Logger
}

// NewCategoryService создает новый сервис категорий
func NewCategoryService(categoryRepo repository.CategoryRepository, logger *zap.Logger) *CategoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CategoryService{categoryRepo: categoryRepo, logger: logger}
}

// ListCategories возвращает категории, упорядоченные по id
func (s *CategoryService) ListCategories(ctx context.Context) ([]entity.Category, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list categories", zap.Error(err))
		return nil, apperrors.Translate(apperrors.ErrNotFound, "list categories", err)
	}
	return categories, nil
}
