package wire

import (
	"net/http"
	"strings"
	"testing"

	"review-hub/internal/adaptor"
	"review-hub/internal/data/repository"
	"review-hub/internal/usecase"
	"review-hub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func routeList(t *testing.T) []string {
	t.Helper()

	repo := &repository.Repository{}
	config := &utils.Config{}
	logger := zap.NewNop()

	service := usecase.NewService(repo, nil, config, logger)
	handler := adaptor.NewHandler(service, logger)
	router := setupRouter(handler, repo, config, logger)

	var routes []string
	err := chi.Walk(router, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, method+" "+route)
		return nil
	})
	require.NoError(t, err)
	return routes
}

func TestRouterMountsReviewsUnderTitles(t *testing.T) {
	routes := routeList(t)

	assert.Contains(t, routes, "POST /api/v1/titles/{titleID}/reviews/")
	assert.Contains(t, routes, "PATCH /api/v1/titles/{titleID}/reviews/{reviewID}/")
	assert.Contains(t, routes, "GET /api/v1/titles/{titleID}/reviews/{reviewID}/comments/{commentID}")

	// Review routes exist only under the titles subtree, never at the root.
	for _, route := range routes {
		_, path, _ := strings.Cut(route, " ")
		assert.False(t, strings.HasPrefix(path, "/{titleID}"), "unexpected root mount: %s", route)
	}
}

func TestRouterExposesPublicRoutes(t *testing.T) {
	routes := routeList(t)

	assert.Contains(t, routes, "POST /api/v1/auth/signup")
	assert.Contains(t, routes, "POST /api/v1/auth/token")
	assert.Contains(t, routes, "GET /health")
}
