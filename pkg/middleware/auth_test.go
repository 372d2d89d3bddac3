package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"review-hub/internal/access"
	"review-hub/internal/data/entity"
	"review-hub/internal/data/repository"
	"review-hub/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

// stubUsers serves a single user by username; every other repository
// method is unused by the middleware.
type stubUsers struct {
	repository.UserRepository
	user *entity.User
}

func (s *stubUsers) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	if s.user != nil && s.user.Username == username {
		return s.user, nil
	}
	return nil, nil
}

func testUser(role entity.UserRole) *entity.User {
	return &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Username: "reader",
		Email:    "reader@example.com",
		Role:     role,
	}
}

func bearerFor(t *testing.T, user *entity.User) string {
	t.Helper()
	token, err := utils.GenerateAccessToken(testSecret, time.Hour, user.ID, user.Username, string(user.Role))
	require.NoError(t, err)
	return "Bearer " + token
}

func callerEcho(t *testing.T, captured *access.Caller) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, ok := access.CallerFrom(r.Context()); ok {
			*captured = c
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateAttachesCaller(t *testing.T) {
	user := testUser(entity.RoleUser)
	users := &stubUsers{user: user}

	var got access.Caller
	handler := Authenticate(testSecret, users, zap.NewNop())(callerEcho(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", bearerFor(t, user))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, got.Authenticated)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, "reader", got.Username)
}

func TestAuthenticateUsesStoredRole(t *testing.T) {
	// Token minted while the user was plain; the stored record was
	// promoted since.
	user := testUser(entity.RoleUser)
	token := bearerFor(t, user)
	user.Role = entity.RoleAdmin
	users := &stubUsers{user: user}

	var got access.Caller
	handler := Authenticate(testSecret, users, zap.NewNop())(callerEcho(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, entity.RoleAdmin, got.Role)
}

func TestAuthenticateRejections(t *testing.T) {
	user := testUser(entity.RoleUser)

	tests := []struct {
		name   string
		users  *stubUsers
		header string
	}{
		{name: "missing header", users: &stubUsers{user: user}, header: ""},
		{name: "malformed header", users: &stubUsers{user: user}, header: "Token abc"},
		{name: "garbage token", users: &stubUsers{user: user}, header: "Bearer garbage"},
		{name: "deleted user", users: &stubUsers{}, header: bearerFor(t, user)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := Authenticate(testSecret, tt.users, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				t.Fatal("handler must not be reached")
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestMaybeAuthenticateLetsAnonymousThrough(t *testing.T) {
	users := &stubUsers{}

	var got access.Caller
	handler := MaybeAuthenticate(testSecret, users, zap.NewNop())(callerEcho(t, &got))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, got.Authenticated)
}

func TestPermit(t *testing.T) {
	adminOnly := Permit(zap.NewNop(), func(c access.Caller, _ *http.Request) bool {
		return access.AdminOnly(c)
	})
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name   string
		caller *access.Caller
		want   int
	}{
		{name: "anonymous", caller: nil, want: http.StatusUnauthorized},
		{name: "plain user", caller: &access.Caller{ID: uuid.New(), Role: entity.RoleUser, Authenticated: true}, want: http.StatusForbidden},
		{name: "admin", caller: &access.Caller{ID: uuid.New(), Role: entity.RoleAdmin, Authenticated: true}, want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			if tt.caller != nil {
				req = req.WithContext(access.WithCaller(req.Context(), *tt.caller))
			}
			rec := httptest.NewRecorder()
			adminOnly(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
