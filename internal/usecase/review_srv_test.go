package usecase

import (
	"context"
	"testing"
	"time"

	"review-hub/internal/access"
	"review-hub/internal/data/entity"
	"review-hub/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedTitle(titles *fakeTitleRepo, name string) *entity.Title {
	title := &entity.Title{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Name: name,
		Year: 2001,
	}
	titles.titles = append(titles.titles, title)
	return title
}

func seedReview(reviews *fakeReviewRepo, titleID, authorID uuid.UUID, score int) *entity.Review {
	review := &entity.Review{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		TitleID:  titleID,
		AuthorID: authorID,
		Text:     "fine",
		Score:    score,
	}
	reviews.reviews = append(reviews.reviews, review)
	return review
}

func callerFor(user *entity.User) access.Caller {
	return access.Caller{
		ID:            user.ID,
		Username:      user.Username,
		Role:          user.Role,
		Authenticated: true,
	}
}

func TestCreateReview(t *testing.T) {
	repo, users, titles, reviews, _ := newFakeRepository()
	svc := NewReviewService(repo, zap.NewNop())

	author := seedUser(users, "reader", "reader@example.com", "11111", entity.RoleUser)
	title := seedTitle(titles, "Dune")

	resp, err := svc.CreateReview(context.Background(), callerFor(author), title.ID.String(), &request.CreateReviewRequest{
		Text:  "great book",
		Score: 9,
	})
	require.NoError(t, err)
	assert.Equal(t, "reader", resp.Author)
	assert.Equal(t, 9, resp.Score)
	assert.Len(t, reviews.reviews, 1)
}

func TestCreateReviewUnknownTitle(t *testing.T) {
	repo, users, _, _, _ := newFakeRepository()
	svc := NewReviewService(repo, zap.NewNop())

	author := seedUser(users, "reader", "reader@example.com", "11111", entity.RoleUser)

	_, err := svc.CreateReview(context.Background(), callerFor(author), uuid.NewString(), &request.CreateReviewRequest{
		Text:  "great book",
		Score: 9,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestCreateReviewDuplicateAuthor(t *testing.T) {
	repo, users, titles, reviews, _ := newFakeRepository()
	svc := NewReviewService(repo, zap.NewNop())

	author := seedUser(users, "reader", "reader@example.com", "11111", entity.RoleUser)
	title := seedTitle(titles, "Dune")
	seedReview(reviews, title.ID, author.ID, 7)

	_, err := svc.CreateReview(context.Background(), callerFor(author), title.ID.String(), &request.CreateReviewRequest{
		Text:  "second take",
		Score: 3,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already reviewed")
	assert.Len(t, reviews.reviews, 1)
}

func TestCreateReviewScoreBounds(t *testing.T) {
	repo, users, titles, _, _ := newFakeRepository()
	svc := NewReviewService(repo, zap.NewNop())

	author := seedUser(users, "reader", "reader@example.com", "11111", entity.RoleUser)
	title := seedTitle(titles, "Dune")

	for _, score := range []int{0, 11, -3} {
		_, err := svc.CreateReview(context.Background(), callerFor(author), title.ID.String(), &request.CreateReviewRequest{
			Text:  "great book",
			Score: score,
		})
		require.Error(t, err, "score %d", score)
		assert.Contains(t, err.Error(), "validation failed")
	}
}

func TestGetReviewOfOtherTitleIsNotFound(t *testing.T) {
	repo, users, titles, reviews, _ := newFakeRepository()
	svc := NewReviewService(repo, zap.NewNop())

	author := seedUser(users, "reader", "reader@example.com", "11111", entity.RoleUser)
	first := seedTitle(titles, "Dune")
	second := seedTitle(titles, "Solaris")
	review := seedReview(reviews, first.ID, author.ID, 7)

	_, err := svc.GetReview(context.Background(), second.ID.String(), review.ID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateReviewAccess(t *testing.T) {
	tests := []struct {
		name    string
		role    entity.UserRole
		author  bool
		wantErr bool
	}{
		{name: "author edits own review", role: entity.RoleUser, author: true},
		{name: "stranger cannot edit", role: entity.RoleUser, author: false, wantErr: true},
		{name: "moderator edits any review", role: entity.RoleModerator, author: false},
		{name: "admin edits any review", role: entity.RoleAdmin, author: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, users, titles, reviews, _ := newFakeRepository()
			svc := NewReviewService(repo, zap.NewNop())

			author := seedUser(users, "author", "author@example.com", "11111", entity.RoleUser)
			actor := author
			if !tt.author {
				actor = seedUser(users, "actor", "actor@example.com", "22222", tt.role)
			}
			title := seedTitle(titles, "Dune")
			review := seedReview(reviews, title.ID, author.ID, 7)

			text := "updated"
			_, err := svc.UpdateReview(context.Background(), callerFor(actor), title.ID.String(), review.ID.String(), &request.UpdateReviewRequest{
				Text: &text,
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "forbidden")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "updated", reviews.reviews[0].Text)
		})
	}
}

func TestDeleteReviewAccess(t *testing.T) {
	repo, users, titles, reviews, _ := newFakeRepository()
	svc := NewReviewService(repo, zap.NewNop())

	author := seedUser(users, "author", "author@example.com", "11111", entity.RoleUser)
	stranger := seedUser(users, "stranger", "stranger@example.com", "22222", entity.RoleUser)
	title := seedTitle(titles, "Dune")
	review := seedReview(reviews, title.ID, author.ID, 7)

	err := svc.DeleteReview(context.Background(), callerFor(stranger), title.ID.String(), review.ID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")
	assert.Len(t, reviews.reviews, 1)

	err = svc.DeleteReview(context.Background(), callerFor(author), title.ID.String(), review.ID.String())
	require.NoError(t, err)
	assert.Empty(t, reviews.reviews)
}

func TestGetReviewsPaginated(t *testing.T) {
	repo, users, titles, reviews, _ := newFakeRepository()
	svc := NewReviewService(repo, zap.NewNop())

	title := seedTitle(titles, "Dune")
	for i := 0; i < 3; i++ {
		u := seedUser(users, uuid.NewString()[:8], uuid.NewString()[:8]+"@example.com", "11111", entity.RoleUser)
		seedReview(reviews, title.ID, u.ID, i+5)
	}

	resp, err := svc.GetReviews(context.Background(), title.ID.String(), &request.PaginatedRequest{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, int64(3), resp.Pagination.Total)
	assert.Equal(t, 2, resp.Pagination.TotalPages)
}
