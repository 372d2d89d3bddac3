package wire

import (
	"net/http"

	"review-hub/internal/access"
	"review-hub/internal/adaptor"
	"review-hub/internal/data/repository"
	"review-hub/pkg/middleware"
	"review-hub/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireCatalog mounts categories, genres and titles. Reads are public;
// mutations require the admin role, decided per method by the access
// predicate. Review and comment routes nest under titles.
func wireCatalog(
	r chi.Router,
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	readOnlyOrAdmin := middleware.Permit(log, func(c access.Caller, req *http.Request) bool {
		return access.ReadOnlyOrAdmin(c, req.Method)
	})

	r.Route("/api/v1/categories", func(r chi.Router) {
		r.Use(middleware.MaybeAuthenticate(config.JWT.Secret, repo.User, log))
		r.Use(readOnlyOrAdmin)

		r.Get("/", handler.Category.GetCategories)
		r.Post("/", handler.Category.CreateCategory)
		r.Delete("/{slug}", handler.Category.DeleteCategory)
	})

	r.Route("/api/v1/genres", func(r chi.Router) {
		r.Use(middleware.MaybeAuthenticate(config.JWT.Secret, repo.User, log))
		r.Use(readOnlyOrAdmin)

		r.Get("/", handler.Genre.GetGenres)
		r.Post("/", handler.Genre.CreateGenre)
		r.Delete("/{slug}", handler.Genre.DeleteGenre)
	})

	r.Route("/api/v1/titles", func(r chi.Router) {
		r.Use(middleware.MaybeAuthenticate(config.JWT.Secret, repo.User, log))

		r.Get("/", handler.Title.GetTitles)
		r.With(readOnlyOrAdmin).Post("/", handler.Title.CreateTitle)
		r.Get("/{titleID}", handler.Title.GetTitle)
		r.With(readOnlyOrAdmin).Patch("/{titleID}", handler.Title.UpdateTitle)
		r.With(readOnlyOrAdmin).Delete("/{titleID}", handler.Title.DeleteTitle)

		wireReview(r, handler, log)
	})
}
