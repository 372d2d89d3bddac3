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

type GenreService interface {
	CreateGenre(ctx context.Context, req *request.CreateGenreRequest) (*response.GenreResponse, error)
	GetGenres(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error)
	DeleteGenre(ctx context.Context, slug string) error
}

type genreService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewGenreService(repo *repository.Repository, log *zap.Logger) GenreService {
	return &genreService{
		repo: repo,
		log:  log.With(zap.String("service", "genre")),
	}
}

func (s *genreService) CreateGenre(ctx context.Context, req *request.CreateGenreRequest) (*response.GenreResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create genre validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.Genre.FindBySlug(ctx, req.Slug)
	if err != nil {
		return nil, fmt.Errorf("failed to check genre slug")
	}
	if existing != nil {
		return nil, fmt.Errorf("validation failed: slug already in use")
	}

	genre := &entity.Genre{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Name: req.Name,
		Slug: req.Slug,
	}

	if err := s.repo.Genre.Create(ctx, genre); err != nil {
		s.log.Error("Failed to create genre", zap.Error(err), zap.String("slug", req.Slug))
		return nil, fmt.Errorf("failed to create genre")
	}

	resp := response.GenreToResponse(genre)
	return &resp, nil
}

func (s *genreService) GetGenres(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.GenreResponse], error) {
	genres, err := s.repo.Genre.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list genres", zap.Error(err))
		return nil, fmt.Errorf("failed to list genres")
	}

	total, err := s.repo.Genre.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count genres", zap.Error(err))
		return nil, fmt.Errorf("failed to count genres")
	}

	items := make([]response.GenreResponse, 0, len(genres))
	for _, genre := range genres {
		items = append(items, response.GenreToResponse(genre))
	}

	return response.NewPaginatedResponse(items, req.Page, req.Limit(), total), nil
}

func (s *genreService) DeleteGenre(ctx context.Context, slug string) error {
	genre, err := s.repo.Genre.FindBySlug(ctx, slug)
	if err != nil {
		return fmt.Errorf("failed to find genre")
	}
	if genre == nil {
		return fmt.Errorf("genre %s not found", slug)
	}

	if err := s.repo.Genre.DeleteBySlug(ctx, slug); err != nil {
		s.log.Error("Failed to delete genre", zap.Error(err), zap.String("slug", slug))
		return fmt.Errorf("failed to delete genre")
	}

	return nil
}
