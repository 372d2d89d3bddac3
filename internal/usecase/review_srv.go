package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"review-hub/internal/access"
	"review-hub/internal/data/entity"
	"review-hub/internal/data/repository"
	"review-hub/internal/dto/request"
	"review-hub/internal/dto/response"
	"review-hub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ReviewService interface {
	CreateReview(ctx context.Context, caller access.Caller, titleID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error)
	GetReview(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error)
	GetReviews(ctx context.Context, titleID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error)
	UpdateReview(ctx context.Context, caller access.Caller, titleID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error)
	DeleteReview(ctx context.Context, caller access.Caller, titleID, reviewID string) error
}

type reviewService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewReviewService(repo *repository.Repository, log *zap.Logger) ReviewService {
	return &reviewService{
		repo: repo,
		log:  log.With(zap.String("service", "review")),
	}
}

// findTitle resolves the path title, erroring as not found when absent.
func (s *reviewService) findTitle(ctx context.Context, titleID string) (*entity.Title, error) {
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

	return title, nil
}

// findReview resolves a review within the path title; a review of
// another title is treated as absent.
func (s *reviewService) findReview(ctx context.Context, title *entity.Title, reviewID string) (*entity.Review, error) {
	id, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("invalid review ID")
	}

	review, err := s.repo.Review.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("failed to find review")
	}
	if review == nil || review.TitleID != title.ID {
		return nil, fmt.Errorf("review %s not found", reviewID)
	}

	return review, nil
}

func (s *reviewService) authorName(ctx context.Context, authorID uuid.UUID) string {
	author, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil || author == nil {
		return ""
	}
	return author.Username
}

func (s *reviewService) CreateReview(ctx context.Context, caller access.Caller, titleID string, req *request.CreateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	// One review per (author, title).
	existing, err := s.repo.Review.FindByAuthorAndTitle(ctx, caller.ID, title.ID)
	if err != nil {
		s.log.Error("Failed to check existing review", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("failed to check existing review")
	}
	if existing != nil {
		return nil, fmt.Errorf("already reviewed this title")
	}

	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TitleID:  title.ID,
		AuthorID: caller.ID,
		Text:     req.Text,
		Score:    req.Score,
	}

	if err := s.repo.Review.Create(ctx, review); err != nil {
		s.log.Error("Failed to create review",
			zap.Error(err),
			zap.String("title_id", titleID),
			zap.String("author", caller.Username))
		return nil, fmt.Errorf("failed to create review")
	}

	s.log.Info("Review created",
		zap.String("review_id", review.ID.String()),
		zap.String("title_id", titleID),
		zap.String("author", caller.Username))

	resp := response.ReviewToResponse(review, caller.Username)
	return &resp, nil
}

func (s *reviewService) GetReview(ctx context.Context, titleID, reviewID string) (*response.ReviewResponse, error) {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	review, err := s.findReview(ctx, title, reviewID)
	if err != nil {
		return nil, err
	}

	resp := response.ReviewToResponse(review, s.authorName(ctx, review.AuthorID))
	return &resp, nil
}

func (s *reviewService) GetReviews(ctx context.Context, titleID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.ReviewResponse], error) {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	reviews, err := s.repo.Review.FindByTitleID(ctx, title.ID, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list reviews", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("failed to list reviews")
	}

	total, err := s.repo.Review.CountByTitleID(ctx, title.ID)
	if err != nil {
		s.log.Error("Failed to count reviews", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("failed to count reviews")
	}

	items := make([]response.ReviewResponse, 0, len(reviews))
	for _, review := range reviews {
		items = append(items, response.ReviewToResponse(review, s.authorName(ctx, review.AuthorID)))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *reviewService) UpdateReview(ctx context.Context, caller access.Caller, titleID, reviewID string, req *request.UpdateReviewRequest) (*response.ReviewResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update review validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return nil, err
	}

	review, err := s.findReview(ctx, title, reviewID)
	if err != nil {
		return nil, err
	}

	if !access.AuthorModeratorAdminOrReadOnly(caller, http.MethodPatch, review.AuthorID) {
		return nil, fmt.Errorf("forbidden: not the author or a moderator")
	}

	if req.Text != nil {
		review.Text = *req.Text
	}
	if req.Score != nil {
		review.Score = *req.Score
	}

	if err := s.repo.Review.Update(ctx, review); err != nil {
		s.log.Error("Failed to update review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("failed to update review")
	}

	resp := response.ReviewToResponse(review, s.authorName(ctx, review.AuthorID))
	return &resp, nil
}

func (s *reviewService) DeleteReview(ctx context.Context, caller access.Caller, titleID, reviewID string) error {
	title, err := s.findTitle(ctx, titleID)
	if err != nil {
		return err
	}

	review, err := s.findReview(ctx, title, reviewID)
	if err != nil {
		return err
	}

	if !access.AuthorModeratorAdminOrReadOnly(caller, http.MethodDelete, review.AuthorID) {
		return fmt.Errorf("forbidden: not the author or a moderator")
	}

	if err := s.repo.Review.Delete(ctx, review.ID); err != nil {
		s.log.Error("Failed to delete review", zap.Error(err), zap.String("review_id", reviewID))
		return fmt.Errorf("failed to delete review")
	}

	return nil
}
