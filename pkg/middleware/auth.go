package middleware

import (
	"net/http"
	"strings"

	"review-hub/internal/access"
	"review-hub/internal/data/repository"
	"review-hub/pkg/utils"

	"go.uber.org/zap"
)

// callerFromToken resolves the Authorization header to a Caller. The
// user record is re-read so a role change takes effect before the
// token expires. Returns the anonymous caller when no valid token is
// present.
func callerFromToken(r *http.Request, secret string, users repository.UserRepository, logger *zap.Logger) (access.Caller, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return access.Caller{}, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return access.Caller{}, false
	}

	claims, err := utils.ParseAccessToken(secret, parts[1])
	if err != nil {
		logger.Warn("Invalid access token", zap.Error(err))
		return access.Caller{}, false
	}

	user, err := users.FindByUsername(r.Context(), claims.Username)
	if err != nil {
		logger.Error("Failed to load token user",
			zap.Error(err),
			zap.String("username", claims.Username))
		return access.Caller{}, false
	}
	if user == nil {
		logger.Warn("Token user no longer exists", zap.String("username", claims.Username))
		return access.Caller{}, false
	}

	return access.Caller{
		ID:            user.ID,
		Username:      user.Username,
		Role:          user.Role,
		Authenticated: true,
	}, true
}

// Authenticate rejects requests without a valid bearer token and puts
// the caller into the request context.
func Authenticate(secret string, users repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, ok := callerFromToken(r, secret, users, logger)
			if !ok {
				utils.ResponseUnauthorized(w, "Missing or invalid authorization token")
				return
			}

			next.ServeHTTP(w, r.WithContext(access.WithCaller(r.Context(), caller)))
		})
	}
}

// MaybeAuthenticate attaches the caller when a valid token is present
// but lets anonymous requests through. Used on routes where reads are
// public and the access predicate decides per method.
func MaybeAuthenticate(secret string, users repository.UserRepository, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if caller, ok := callerFromToken(r, secret, users, logger); ok {
				r = r.WithContext(access.WithCaller(r.Context(), caller))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Permit gates a route on an access predicate; the predicate sees the
// caller (anonymous when unauthenticated) and the request.
func Permit(logger *zap.Logger, allow func(access.Caller, *http.Request) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller, _ := access.CallerFrom(r.Context())
			if !allow(caller, r) {
				logger.Warn("Access denied",
					zap.String("username", caller.Username),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path))
				if !caller.Authenticated {
					utils.ResponseUnauthorized(w, "Authentication required")
					return
				}
				utils.ResponseForbidden(w, "You do not have permission to perform this action")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
