package usecase

import (
	"review-hub/internal/data/repository"
	"review-hub/pkg/mailer"
	"review-hub/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	User     UserService
	Category CategoryService
	Genre    GenreService
	Title    TitleService
	Review   ReviewService
	Comment  CommentService
}

func NewService(repo *repository.Repository, mail mailer.Mailer, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, mail, config, log),
		User:     NewUserService(repo, log),
		Category: NewCategoryService(repo, log),
		Genre:    NewGenreService(repo, log),
		Title:    NewTitleService(repo, log),
		Review:   NewReviewService(repo, log),
		Comment:  NewCommentService(repo, log),
	}
}
