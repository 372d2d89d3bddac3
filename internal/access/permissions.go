// Package access decides whether a caller may perform an action on a
// resource. Predicates are pure: they look only at the caller identity,
// the HTTP method and, where relevant, the resource's author.
package access

import (
	"net/http"

	"review-hub/internal/data/entity"

	"github.com/google/uuid"
)

// Caller is the authenticated identity attached to a request. The zero
// value is an anonymous caller, which is never allowed to mutate
// anything.
type Caller struct {
	ID            uuid.UUID
	Username      string
	Role          entity.UserRole
	Authenticated bool
}

// SafeMethod reports whether the HTTP method is read-only.
func SafeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// ReadOnlyOrAdmin allows reads for anyone and writes for admins only.
// Used for categories, genres and titles.
func ReadOnlyOrAdmin(c Caller, method string) bool {
	if SafeMethod(method) {
		return true
	}
	return c.Authenticated && c.Role == entity.RoleAdmin
}

// AdminOnly requires an admin for every method. Used for user-account
// management.
func AdminOnly(c Caller) bool {
	return c.Authenticated && c.Role == entity.RoleAdmin
}

// AuthorModeratorAdminOrReadOnly allows reads for anyone; writes need
// an authenticated caller who is the resource author, a moderator or an
// admin. Used for reviews and comments.
func AuthorModeratorAdminOrReadOnly(c Caller, method string, authorID uuid.UUID) bool {
	if SafeMethod(method) {
		return true
	}
	if !c.Authenticated {
		return false
	}
	if c.ID == authorID {
		return true
	}
	return c.Role == entity.RoleModerator || c.Role == entity.RoleAdmin
}
