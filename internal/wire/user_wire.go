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

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	r.Route("/api/v1/users", func(r chi.Router) {
		r.Use(middleware.Authenticate(config.JWT.Secret, repo.User, log))

		// An authenticated user manages their own profile. Registered
		// before the admin group so "me" never matches {username}.
		r.Get("/me", userHandler.GetMe)
		r.Patch("/me", userHandler.UpdateMe)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Permit(log, func(c access.Caller, _ *http.Request) bool {
				return access.AdminOnly(c)
			}))

			r.Post("/", userHandler.CreateUser)
			r.Get("/", userHandler.GetUsers)
			r.Get("/{username}", userHandler.GetUser)
			r.Patch("/{username}", userHandler.UpdateUser)
			r.Delete("/{username}", userHandler.DeleteUser)
		})
	})
}
