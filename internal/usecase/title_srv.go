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

type TitleService interface {
	CreateTitle(ctx context.Context, req *request.CreateTitleRequest) (*response.TitleResponse, error)
	GetTitle(ctx context.Context, titleID string) (*response.TitleResponse, error)
	GetTitles(ctx context.Context, filter request.TitleListFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error)
	UpdateTitle(ctx context.Context, titleID string, req *request.UpdateTitleRequest) (*response.TitleResponse, error)
	DeleteTitle(ctx context.Context, titleID string) error
}

type titleService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewTitleService(repo *repository.Repository, log *zap.Logger) TitleService {
	return &titleService{
		repo: repo,
		log:  log.With(zap.String("service", "title")),
	}
}

// resolveCategory maps a category slug to its record, erroring when the
// slug is unknown. An empty slug resolves to no category.
func (s *titleService) resolveCategory(ctx context.Context, slug string) (*entity.Category, error) {
	if slug == "" {
		return nil, nil
	}

	category, err := s.repo.Category.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to find category")
	}
	if category == nil {
		return nil, fmt.Errorf("category %s not found", slug)
	}
	return category, nil
}

// resolveGenres maps genre slugs to records; every slug must exist.
func (s *titleService) resolveGenres(ctx context.Context, slugs []string) ([]*entity.Genre, error) {
	if len(slugs) == 0 {
		return nil, nil
	}

	genres, err := s.repo.Genre.FindBySlugs(ctx, slugs)
	if err != nil {
		return nil, fmt.Errorf("failed to find genres")
	}
	if len(genres) != len(slugs) {
		return nil, fmt.Errorf("validation failed: unknown genre slug")
	}
	return genres, nil
}

func (s *titleService) CreateTitle(ctx context.Context, req *request.CreateTitleRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	category, err := s.resolveCategory(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	genres, err := s.resolveGenres(ctx, req.Genres)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:        req.Name,
		Year:        req.Year,
		Description: req.Description,
	}
	if category != nil {
		title.CategoryID = &category.ID
	}

	if err := s.repo.Title.Create(ctx, title); err != nil {
		s.log.Error("Failed to create title", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("failed to create title")
	}

	if len(genres) > 0 {
		genreIDs := make([]uuid.UUID, 0, len(genres))
		for _, genre := range genres {
			genreIDs = append(genreIDs, genre.ID)
		}
		if err := s.repo.TitleGenre.Replace(ctx, title.ID, genreIDs); err != nil {
			s.log.Error("Failed to attach genres", zap.Error(err), zap.String("title_id", title.ID.String()))
			return nil, fmt.Errorf("failed to attach genres")
		}
	}

	s.log.Info("Title created",
		zap.String("title_id", title.ID.String()),
		zap.String("name", title.Name))

	resp := response.TitleToResponse(title, category, genres)
	return &resp, nil
}

func (s *titleService) GetTitle(ctx context.Context, titleID string) (*response.TitleResponse, error) {
	id, err := uuid.Parse(titleID)
	if err != nil {
		return nil, fmt.Errorf("invalid title ID")
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("failed to find title")
	}
	if title == nil {
		return nil, fmt.Errorf("title %s not found", titleID)
	}

	return s.expand(ctx, title)
}

func (s *titleService) GetTitles(ctx context.Context, filter request.TitleListFilter, page *request.PaginatedRequest) (*response.PaginatedResponse[response.TitleResponse], error) {
	repoFilter := repository.TitleFilter{
		CategorySlug: filter.Category,
		GenreSlug:    filter.Genre,
		Name:         filter.Name,
		Year:         filter.Year,
	}

	titles, err := s.repo.Title.FindAll(ctx, repoFilter, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list titles", zap.Error(err))
		return nil, fmt.Errorf("failed to list titles")
	}

	total, err := s.repo.Title.CountAll(ctx, repoFilter)
	if err != nil {
		s.log.Error("Failed to count titles", zap.Error(err))
		return nil, fmt.Errorf("failed to count titles")
	}

	items := make([]response.TitleResponse, 0, len(titles))
	for _, title := range titles {
		resp, err := s.expand(ctx, title)
		if err != nil {
			return nil, err
		}
		items = append(items, *resp)
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *titleService) UpdateTitle(ctx context.Context, titleID string, req *request.UpdateTitleRequest) (*response.TitleResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update title validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	id, err := uuid.Parse(titleID)
	if err != nil {
		return nil, fmt.Errorf("invalid title ID")
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("failed to find title")
	}
	if title == nil {
		return nil, fmt.Errorf("title %s not found", titleID)
	}

	if req.Name != nil {
		title.Name = *req.Name
	}
	if req.Year != nil {
		title.Year = *req.Year
	}
	if req.Description != nil {
		title.Description = req.Description
	}
	if req.Category != nil {
		category, err := s.resolveCategory(ctx, *req.Category)
		if err != nil {
			return nil, err
		}
		if category != nil {
			title.CategoryID = &category.ID
		} else {
			title.CategoryID = nil
		}
	}
	title.UpdatedAt = time.Now()

	if err := s.repo.Title.Update(ctx, title); err != nil {
		s.log.Error("Failed to update title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("failed to update title")
	}

	if req.Genres != nil {
		genres, err := s.resolveGenres(ctx, req.Genres)
		if err != nil {
			return nil, err
		}
		genreIDs := make([]uuid.UUID, 0, len(genres))
		for _, genre := range genres {
			genreIDs = append(genreIDs, genre.ID)
		}
		if err := s.repo.TitleGenre.Replace(ctx, title.ID, genreIDs); err != nil {
			s.log.Error("Failed to replace genres", zap.Error(err), zap.String("title_id", titleID))
			return nil, fmt.Errorf("failed to replace genres")
		}
	}

	return s.expand(ctx, title)
}

func (s *titleService) DeleteTitle(ctx context.Context, titleID string) error {
	id, err := uuid.Parse(titleID)
	if err != nil {
		return fmt.Errorf("invalid title ID")
	}

	title, err := s.repo.Title.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", titleID))
		return fmt.Errorf("failed to find title")
	}
	if title == nil {
		return fmt.Errorf("title %s not found", titleID)
	}

	if err := s.repo.Title.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete title", zap.Error(err), zap.String("title_id", titleID))
		return fmt.Errorf("failed to delete title")
	}

	return nil
}

// expand loads the category and genre associations for a title row.
func (s *titleService) expand(ctx context.Context, title *entity.Title) (*response.TitleResponse, error) {
	var category *entity.Category
	if title.CategoryID != nil {
		var err error
		category, err = s.repo.Category.FindByID(ctx, *title.CategoryID)
		if err != nil {
			s.log.Error("Failed to load title category", zap.Error(err), zap.String("title_id", title.ID.String()))
			return nil, fmt.Errorf("failed to load title category")
		}
	}

	genres, err := s.repo.Genre.FindByTitleID(ctx, title.ID)
	if err != nil {
		s.log.Error("Failed to load title genres", zap.Error(err), zap.String("title_id", title.ID.String()))
		return nil, fmt.Errorf("failed to load title genres")
	}

	resp := response.TitleToResponse(title, category, genres)
	return &resp, nil
}
