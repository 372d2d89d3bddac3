package usecase

import (
	"context"
	"fmt"
	"time"

	"review-hub/internal/data/entity"
	"review-hub/internal/data/repository"
	"review-hub/internal/dto/request"
	"review-hub/internal/dto/response"
	"review-hub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CategoryService interface {
	CreateCategory(ctx context.Context, req *request.CreateCategoryRequest) (*response.CategoryResponse, error)
	GetCategories(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error)
	DeleteCategory(ctx context.Context, slug string) error
}

type categoryService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCategoryService(repo *repository.Repository, log *zap.Logger) CategoryService {
	return &categoryService{
		repo: repo,
		log:  log.With(zap.String("service", "category")),
	}
}

func (s *categoryService) CreateCategory(ctx context.Context, req *request.CreateCategoryRequest) (*response.CategoryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create category validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Category.FindBySlug(ctx, req.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check category slug")
	}
	if existing != nil {
		return nil, fmt.Errorf("validation failed: slug already in use")
	}

	category := &entity.Category{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.repo.Category.Create(ctx, category); err != nil {
		s.log.Error("Failed to create category", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("failed to create category")
	}

	resp := response.CategoryToResponse(category)
	return &resp, nil
}

func (s *categoryService) GetCategories(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.CategoryResponse], error) {
	categories, err := s.repo.Category.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list categories", zap.Error(err))
		return nil, fmt.Errorf("failed to list categories")
	}

	total, err := s.repo.Category.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count categories", zap.Error(err))
		return nil, fmt.Errorf("failed to count categories")
	}

	items := make([]response.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		items = append(items, response.CategoryToResponse(category))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, slug string) error {
	category, err := s.repo.Category.FindBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to find category")
	}
	if category == nil {
		return fmt.Errorf("category %s not found", slug)
	}

	if err := s.repo.Category.DeleteBySlug(ctx, slug); err != nil {
		s.log.Error("Failed to delete category", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("failed to delete category")
	}

	return nil
}
