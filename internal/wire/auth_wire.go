package wire

import (
	"review-hub/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler) {
	// Public routes, no auth middleware.
	r.Post("/api/v1/auth/signup", authHandler.Signup)
	r.Post("/api/v1/auth/token", authHandler.Token)
}
