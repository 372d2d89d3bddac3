package usecase

import (
	"context"
	"testing"

	"review-hub/internal/dto/request"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCreateCategory(t *testing.T) {
	repo, _, _, _, _ := newFakeRepository()
	svc := NewCategoryService(repo, zap.NewNop())

	resp, err := svc.CreateCategory(context.Background(), &request.CreateCategoryRequest{
		Name: "Books",
		Slug: "books",
	})
	require.NoError(t, err)
	assert.Equal(t, "Books", resp.Name)
	assert.Equal(t, "books", resp.Slug)
}

func TestCreateCategoryDuplicateSlug(t *testing.T) {
	repo, _, _, _, _ := newFakeRepository()
	svc := NewCategoryService(repo, zap.NewNop())

	_, err := svc.CreateCategory(context.Background(), &request.CreateCategoryRequest{Name: "Books", Slug: "books"})
	require.NoError(t, err)

	_, err = svc.CreateCategory(context.Background(), &request.CreateCategoryRequest{Name: "More Books", Slug: "books"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slug already in use")
}

func TestCreateCategoryInvalidSlug(t *testing.T) {
	repo, _, _, _, _ := newFakeRepository()
	svc := NewCategoryService(repo, zap.NewNop())

	_, err := svc.CreateCategory(context.Background(), &request.CreateCategoryRequest{Name: "Books", Slug: "not a slug"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestDeleteCategory(t *testing.T) {
	repo, _, _, _, _ := newFakeRepository()
	svc := NewCategoryService(repo, zap.NewNop())

	_, err := svc.CreateCategory(context.Background(), &request.CreateCategoryRequest{Name: "Books", Slug: "books"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCategory(context.Background(), "books"))

	err = svc.DeleteCategory(context.Background(), "books")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetCategoriesPaginated(t *testing.T) {
	repo, _, _, _, _ := newFakeRepository()
	svc := NewCategoryService(repo, zap.NewNop())

	for _, slug := range []string{"books", "films", "music"} {
		_, err := svc.CreateCategory(context.Background(), &request.CreateCategoryRequest{Name: slug, Slug: slug})
		require.NoError(t, err)
	}

	resp, err := svc.GetCategories(context.Background(), &request.PaginatedRequest{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
	assert.Equal(t, int64(3), resp.Pagination.Total)
}

func TestGenreLifecycle(t *testing.T) {
	repo, _, _, _, _ := newFakeRepository()
	svc := NewGenreService(repo, zap.NewNop())

	resp, err := svc.CreateGenre(context.Background(), &request.CreateGenreRequest{Name: "Sci-Fi", Slug: "sci-fi"})
	require.NoError(t, err)
	assert.Equal(t, "sci-fi", resp.Slug)

	_, err = svc.CreateGenre(context.Background(), &request.CreateGenreRequest{Name: "Sci-Fi Again", Slug: "sci-fi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "slug already in use")

	list, err := svc.GetGenres(context.Background(), &request.PaginatedRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	assert.Len(t, list.Data, 1)

	require.NoError(t, svc.DeleteGenre(context.Background(), "sci-fi"))

	err = svc.DeleteGenre(context.Background(), "sci-fi")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
