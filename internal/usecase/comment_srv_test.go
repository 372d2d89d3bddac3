package usecase

import (
	"context"
	"testing"
	"time"

	"review-hub/internal/data/entity"
	"review-hub/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedComment(comments *fakeCommentRepo, reviewID, authorID uuid.UUID) *entity.Comment {
	comment := &entity.Comment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		ReviewID: reviewID,
		AuthorID: authorID,
		Text:     "agreed",
	}
	comments.comments = append(comments.comments, comment)
	return comment
}

func TestCreateComment(t *testing.T) {
	repo, users, titles, reviews, comments := newFakeRepository()
	svc := NewCommentService(repo, zap.NewNop())

	author := seedUser(users, "reader", "reader@example.com", "11111", entity.RoleUser)
	title := seedTitle(titles, "Dune")
	review := seedReview(reviews, title.ID, author.ID, 8)

	resp, err := svc.CreateComment(context.Background(), callerFor(author), title.ID.String(), review.ID.String(), &request.CreateCommentRequest{
		Text: "well said",
	})
	require.NoError(t, err)
	assert.Equal(t, "reader", resp.Author)
	assert.Equal(t, "well said", resp.Text)
	assert.Len(t, comments.comments, 1)
}

func TestCreateCommentUnknownReview(t *testing.T) {
	repo, users, titles, _, comments := newFakeRepository()
	svc := NewCommentService(repo, zap.NewNop())

	author := seedUser(users, "reader", "reader@example.com", "11111", entity.RoleUser)
	title := seedTitle(titles, "Dune")

	_, err := svc.CreateComment(context.Background(), callerFor(author), title.ID.String(), uuid.NewString(), &request.CreateCommentRequest{
		Text: "well said",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
	assert.Empty(t, comments.comments)
}

func TestGetCommentOfOtherReviewIsNotFound(t *testing.T) {
	repo, users, titles, reviews, comments := newFakeRepository()
	svc := NewCommentService(repo, zap.NewNop())

	author := seedUser(users, "reader", "reader@example.com", "11111", entity.RoleUser)
	other := seedUser(users, "other", "other@example.com", "22222", entity.RoleUser)
	title := seedTitle(titles, "Dune")
	first := seedReview(reviews, title.ID, author.ID, 8)
	second := seedReview(reviews, title.ID, other.ID, 5)
	comment := seedComment(comments, first.ID, author.ID)

	_, err := svc.GetComment(context.Background(), title.ID.String(), second.ID.String(), comment.ID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUpdateCommentAccess(t *testing.T) {
	tests := []struct {
		name    string
		role    entity.UserRole
		author  bool
		wantErr bool
	}{
		{name: "author edits own comment", role: entity.RoleUser, author: true},
		{name: "stranger cannot edit", role: entity.RoleUser, author: false, wantErr: true},
		{name: "moderator edits any comment", role: entity.RoleModerator, author: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, users, titles, reviews, comments := newFakeRepository()
			svc := NewCommentService(repo, zap.NewNop())

			author := seedUser(users, "author", "author@example.com", "11111", entity.RoleUser)
			actor := author
			if !tt.author {
				actor = seedUser(users, "actor", "actor@example.com", "22222", tt.role)
			}
			title := seedTitle(titles, "Dune")
			review := seedReview(reviews, title.ID, author.ID, 8)
			comment := seedComment(comments, review.ID, author.ID)

			_, err := svc.UpdateComment(context.Background(), callerFor(actor), title.ID.String(), review.ID.String(), comment.ID.String(), &request.UpdateCommentRequest{
				Text: "updated",
			})
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "forbidden")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "updated", comments.comments[0].Text)
		})
	}
}

func TestDeleteCommentAccess(t *testing.T) {
	repo, users, titles, reviews, comments := newFakeRepository()
	svc := NewCommentService(repo, zap.NewNop())

	author := seedUser(users, "author", "author@example.com", "11111", entity.RoleUser)
	stranger := seedUser(users, "stranger", "stranger@example.com", "22222", entity.RoleUser)
	title := seedTitle(titles, "Dune")
	review := seedReview(reviews, title.ID, author.ID, 8)
	comment := seedComment(comments, review.ID, author.ID)

	err := svc.DeleteComment(context.Background(), callerFor(stranger), title.ID.String(), review.ID.String(), comment.ID.String())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forbidden")
	assert.Len(t, comments.comments, 1)

	err = svc.DeleteComment(context.Background(), callerFor(author), title.ID.String(), review.ID.String(), comment.ID.String())
	require.NoError(t, err)
	assert.Empty(t, comments.comments)
}
