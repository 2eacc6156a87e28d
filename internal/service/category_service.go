package service

import (
	"context"
	"errors"
	"time"

	"fintrack/internal/dto"
	"fintrack/internal/models"
	"fintrack/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidCategoryKind = errors.New("category kind must be income or expense")

type CategoryService struct {
	categoryRepo *repository.CategoryRepository
	logger       *zap.Logger
}

func NewCategoryService(categoryRepo *repository.CategoryRepository, logger *zap.Logger) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	kind := models.CategoryKind(req.Kind)
	if kind != models.CategoryIncome && kind != models.CategoryExpense {
		return nil, ErrInvalidCategoryKind
	}

	category := &models.Category{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      req.Name,
		Kind:      kind,
		Color:     req.Color,
		CreatedAt: time.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return categoryToResponse(category), nil
}

func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]*dto.CategoryResponse, error) {
	categories, err := s.categoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		responses = append(responses, categoryToResponse(c))
	}
	return responses, nil
}

func (s *CategoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return s.categoryRepo.Delete(ctx, userID, id)
}

func categoryToResponse(c *models.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:    c.ID.String(),
		Name:  c.Name,
		Kind:  string(c.Kind),
		Color: c.Color,
	}
}
