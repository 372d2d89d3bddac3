package wire

import (
	"net/http"

	"review-hub/internal/access"
	"review-hub/internal/adaptor"
	"review-hub/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// wireReview mounts review and comment routes under a titles subrouter
// that already resolves the caller. Reads are public, writes need an
// authenticated caller; author and moderator checks on existing rows
// happen in the services, which know the row's author.
func wireReview(r chi.Router, handler *adaptor.Handler, log *zap.Logger) {
	authenticated := middleware.Permit(log, func(c access.Caller, _ *http.Request) bool {
		return c.Authenticated
	})

	r.Route("/{titleID}/reviews", func(r chi.Router) {
		r.Get("/", handler.Review.GetReviews)
		r.With(authenticated).Post("/", handler.Review.CreateReview)

		r.Route("/{reviewID}", func(r chi.Router) {
			r.Get("/", handler.Review.GetReview)
			r.With(authenticated).Patch("/", handler.Review.UpdateReview)
			r.With(authenticated).Delete("/", handler.Review.DeleteReview)

			r.Route("/comments", func(r chi.Router) {
				r.Get("/", handler.Comment.GetComments)
				r.With(authenticated).Post("/", handler.Comment.CreateComment)

				r.Get("/{commentID}", handler.Comment.GetComment)
				r.With(authenticated).Patch("/{commentID}", handler.Comment.UpdateComment)
				r.With(authenticated).Delete("/{commentID}", handler.Comment.DeleteComment)
			})
		})
	})
}
