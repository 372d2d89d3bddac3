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

type CommentService interface {
	CreateComment(ctx context.Context, caller access.Caller, titleID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error)
	GetComment(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error)
	GetComments(ctx context.Context, titleID, reviewID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error)
	UpdateComment(ctx context.Context, caller access.Caller, titleID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error)
	DeleteComment(ctx context.Context, caller access.Caller, titleID, reviewID, commentID string) error
}

type commentService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewCommentService(repo *repository.Repository, log *zap.Logger) CommentService {
	return &commentService{
		repo: repo,
		log:  log.With(zap.String("service", "comment")),
	}
}

// findReview resolves the path title and review pair; a review of another
// title is treated as absent.
func (s *commentService) findReview(ctx context.Context, titleID, reviewID string) (*entity.Review, error) {
	tid, err := uuid.Parse(titleID)
	if err != nil {
		return nil, fmt.Errorf("invalid title ID")
	}

	title, err := s.repo.Title.FindByID(ctx, tid)
	if err != nil {
		s.log.Error("Failed to find title", zap.Error(err), zap.String("title_id", titleID))
		return nil, fmt.Errorf("failed to find title")
	}
	if title == nil {
		return nil, fmt.Errorf("title %s not found", titleID)
	}

	rid, err := uuid.Parse(reviewID)
	if err != nil {
		return nil, fmt.Errorf("invalid review ID")
	}

	review, err := s.repo.Review.FindByID(ctx, rid)
	if err != nil {
		s.log.Error("Failed to find review", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("failed to find review")
	}
	if review == nil || review.TitleID != title.ID {
		return nil, fmt.Errorf("review %s not found", reviewID)
	}

	return review, nil
}

// findComment resolves a comment within the path review.
func (s *commentService) findComment(ctx context.Context, review *entity.Review, commentID string) (*entity.Comment, error) {
	id, err := uuid.Parse(commentID)
	if err != nil {
		return nil, fmt.Errorf("invalid comment ID")
	}

	comment, err := s.repo.Comment.FindByID(ctx, id)
	if err != nil {
		s.log.Error("Failed to find comment", zap.Error(err), zap.String("comment_id", commentID))
		return nil, fmt.Errorf("failed to find comment")
	}
	if comment == nil || comment.ReviewID != review.ID {
		return nil, fmt.Errorf("comment %s not found", commentID)
	}

	return comment, nil
}

func (s *commentService) authorName(ctx context.Context, authorID uuid.UUID) string {
	author, err := s.repo.User.FindByID(ctx, authorID)
	if err != nil || author == nil {
		return ""
	}
	return author.Username
}

func (s *commentService) CreateComment(ctx context.Context, caller access.Caller, titleID, reviewID string, req *request.CreateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReviewID: review.ID,
		AuthorID: caller.ID,
		Text:     req.Text,
	}

	if err := s.repo.Comment.Create(ctx, comment); err != nil {
		s.log.Error("Failed to create comment",
			zap.Error(err),
			zap.String("review_id", reviewID),
			zap.String("author", caller.Username))
		return nil, fmt.Errorf("failed to create comment")
	}

	s.log.Info("Comment created",
		zap.String("comment_id", comment.ID.String()),
		zap.String("review_id", reviewID),
		zap.String("author", caller.Username))

	resp := response.CommentToResponse(comment, caller.Username)
	return &resp, nil
}

func (s *commentService) GetComment(ctx context.Context, titleID, reviewID, commentID string) (*response.CommentResponse, error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment, err := s.findComment(ctx, review, commentID)
	if err != nil {
		return nil, err
	}

	resp := response.CommentToResponse(comment, s.authorName(ctx, comment.AuthorID))
	return &resp, nil
}

func (s *commentService) GetComments(ctx context.Context, titleID, reviewID string, page *request.PaginatedRequest) (*response.PaginatedResponse[response.CommentResponse], error) {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comments, err := s.repo.Comment.FindByReviewID(ctx, review.ID, page.Limit(), page.Offset())
	if err != nil {
		s.log.Error("Failed to list comments", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("failed to list comments")
	}

	total, err := s.repo.Comment.CountByReviewID(ctx, review.ID)
	if err != nil {
		s.log.Error("Failed to count comments", zap.Error(err), zap.String("review_id", reviewID))
		return nil, fmt.Errorf("failed to count comments")
	}

	items := make([]response.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		items = append(items, response.CommentToResponse(comment, s.authorName(ctx, comment.AuthorID)))
	}

	return response.NewPaginatedResponse(items, page.Page, page.Limit(), total), nil
}

func (s *commentService) UpdateComment(ctx context.Context, caller access.Caller, titleID, reviewID, commentID string, req *request.UpdateCommentRequest) (*response.CommentResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Update comment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return nil, err
	}

	comment, err := s.findComment(ctx, review, commentID)
	if err != nil {
		return nil, err
	}

	if !access.AuthorModeratorAdminOrReadOnly(caller, http.MethodPatch, comment.AuthorID) {
		return nil, fmt.Errorf("forbidden: not the author or a moderator")
	}

	comment.Text = req.Text

	if err := s.repo.Comment.Update(ctx, comment); err != nil {
		s.log.Error("Failed to update comment", zap.Error(err), zap.String("comment_id", commentID))
		return nil, fmt.Errorf("failed to update comment")
	}

	resp := response.CommentToResponse(comment, s.authorName(ctx, comment.AuthorID))
	return &resp, nil
}

func (s *commentService) DeleteComment(ctx context.Context, caller access.Caller, titleID, reviewID, commentID string) error {
	review, err := s.findReview(ctx, titleID, reviewID)
	if err != nil {
		return err
	}

	comment, err := s.findComment(ctx, review, commentID)
	if err != nil {
		return err
	}

	if !access.AuthorModeratorAdminOrReadOnly(caller, http.MethodDelete, comment.AuthorID) {
		return fmt.Errorf("forbidden: not the author or a moderator")
	}

	if err := s.repo.Comment.Delete(ctx, comment.ID); err != nil {
		s.log.Error("Failed to delete comment", zap.Error(err), zap.String("comment_id", commentID))
		return fmt.Errorf("failed to delete comment")
	}

	return nil
}
