package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"review-hub/internal/data/entity"
	"review-hub/internal/dto/request"
	"review-hub/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		JWT: utils.JWTConfig{
			Secret:      "test-secret",
			ExpiryHours: 1,
		},
	}
}

func seedUser(users *fakeUserRepo, username, email, code string, role entity.UserRole) *entity.User {
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		Username:         username,
		Email:            email,
		Role:             role,
		ConfirmationCode: code,
	}
	users.users = append(users.users, user)
	return user
}

func TestSignupCreatesAccount(t *testing.T) {
	repo, users, _, _, _ := newFakeRepository()
	mail := &fakeMailer{}
	svc := NewAuthService(repo, mail, testConfig(), zap.NewNop())

	resp, err := svc.Signup(context.Background(), &request.SignupRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "reader", resp.Username)
	assert.Equal(t, "reader@example.com", resp.Email)

	require.Len(t, users.users, 1)
	created := users.users[0]
	assert.Equal(t, entity.RoleUser, created.Role)
	assert.Len(t, created.ConfirmationCode, 5)

	require.Len(t, mail.sent, 1)
	assert.Equal(t, "reader@example.com", mail.sent[0].to)
	assert.Contains(t, mail.sent[0].body, created.ConfirmationCode)
}

func TestSignupResendRotatesCode(t *testing.T) {
	repo, users, _, _, _ := newFakeRepository()
	mail := &fakeMailer{}
	svc := NewAuthService(repo, mail, testConfig(), zap.NewNop())

	seedUser(users, "reader", "reader@example.com", "11111", entity.RoleUser)

	resp, err := svc.Signup(context.Background(), &request.SignupRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "reader", resp.Username)

	// Same record, new code, one mail.
	require.Len(t, users.users, 1)
	assert.NotEqual(t, "11111", users.users[0].ConfirmationCode)
	require.Len(t, mail.sent, 1)
	assert.Contains(t, mail.sent[0].body, users.users[0].ConfirmationCode)
}

func TestSignupUniquenessCollisions(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
		wantErr  string
	}{
		{
			name:     "username taken by another email",
			username: "reader",
			email:    "other@example.com",
			wantErr:  "username already taken",
		},
		{
			name:     "email taken by another username",
			username: "other",
			email:    "reader@example.com",
			wantErr:  "email already registered",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, users, _, _, _ := newFakeRepository()
			mail := &fakeMailer{}
			svc := NewAuthService(repo, mail, testConfig(), zap.NewNop())

			seedUser(users, "reader", "reader@example.com", "11111", entity.RoleUser)

			_, err := svc.Signup(context.Background(), &request.SignupRequest{
				Username: tt.username,
				Email:    tt.email,
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Len(t, users.users, 1)
			assert.Empty(t, mail.sent)
		})
	}
}

func TestSignupRejectsInvalidPayload(t *testing.T) {
	tests := []struct {
		name     string
		username string
		email    string
	}{
		{name: "reserved username", username: "me", email: "me@example.com"},
		{name: "bad username characters", username: "rea der", email: "reader@example.com"},
		{name: "bad email", username: "reader", email: "not-an-email"},
		{name: "username too long", username: strings.Repeat("a", 151), email: "reader@example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, users, _, _, _ := newFakeRepository()
			svc := NewAuthService(repo, &fakeMailer{}, testConfig(), zap.NewNop())

			_, err := svc.Signup(context.Background(), &request.SignupRequest{
				Username: tt.username,
				Email:    tt.email,
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "validation failed")
			assert.Empty(t, users.users)
		})
	}
}

func TestSignupSurvivesMailFailure(t *testing.T) {
	repo, users, _, _, _ := newFakeRepository()
	mail := &fakeMailer{fail: true}
	svc := NewAuthService(repo, mail, testConfig(), zap.NewNop())

	_, err := svc.Signup(context.Background(), &request.SignupRequest{
		Username: "reader",
		Email:    "reader@example.com",
	})
	require.NoError(t, err)
	assert.Len(t, users.users, 1)
}

func TestTokenUnknownUsername(t *testing.T) {
	repo, _, _, _, _ := newFakeRepository()
	svc := NewAuthService(repo, &fakeMailer{}, testConfig(), zap.NewNop())

	_, err := svc.Token(context.Background(), &request.TokenRequest{
		Username:         "ghost",
		ConfirmationCode: "12345",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestTokenWrongCode(t *testing.T) {
	repo, users, _, _, _ := newFakeRepository()
	svc := NewAuthService(repo, &fakeMailer{}, testConfig(), zap.NewNop())

	seedUser(users, "reader", "reader@example.com", "11111", entity.RoleUser)

	_, err := svc.Token(context.Background(), &request.TokenRequest{
		Username:         "reader",
		ConfirmationCode: "22222",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid confirmation code")
	assert.NotContains(t, err.Error(), "not found")
}

func TestTokenIssuesBearerToken(t *testing.T) {
	repo, users, _, _, _ := newFakeRepository()
	cfg := testConfig()
	svc := NewAuthService(repo, &fakeMailer{}, cfg, zap.NewNop())

	user := seedUser(users, "reader", "reader@example.com", "11111", entity.RoleModerator)

	resp, err := svc.Token(context.Background(), &request.TokenRequest{
		Username:         "reader",
		ConfirmationCode: "11111",
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(resp.Token, "Bearer "))

	claims, err := utils.ParseAccessToken(cfg.JWT.Secret, strings.TrimPrefix(resp.Token, "Bearer "))
	require.NoError(t, err)
	assert.Equal(t, "reader", claims.Username)
	assert.Equal(t, string(entity.RoleModerator), claims.Role)
	assert.Equal(t, user.ID.String(), claims.UserID)

	// The code stays valid after a successful exchange.
	assert.Equal(t, "11111", users.users[0].ConfirmationCode)
}
