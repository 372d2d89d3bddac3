package usecase

import (
	"context"
	"fmt"
	"time"

	"review-hub/internal/data/entity"
	"review-hub/internal/data/repository"
	"review-hub/internal/dto/request"
	"review-hub/internal/dto/response"
	"review-hub/pkg/mailer"
	"review-hub/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AuthService interface {
	Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error)
	Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error)
}

type authService struct {
	repo   *repository.Repository
	mail   mailer.Mailer
	config *utils.Config
	log    *zap.Logger
}

func NewAuthService(
	repo *repository.Repository,
	mail mailer.Mailer,
	config *utils.Config,
	log *zap.Logger,
) AuthService {
	return &authService{
		repo:   repo,
		mail:   mail,
		config: config,
		log:    log.With(zap.String("service", "auth")),
	}
}

// Signup registers a new account or, when the exact (username, email)
// pair already exists, rotates its confirmation code and resends it.
func (s *authService) Signup(ctx context.Context, req *request.SignupRequest) (*response.SignupResponse, error) {
	// Malformed payloads are rejected before either branch.
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Signup validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	existing, err := s.repo.User.FindByUsernameAndEmail(ctx, req.Username, req.Email)
	if err != nil {
		s.log.Error("Failed to check signup identity", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to check signup identity")
	}

	if existing != nil {
		return s.resend(ctx, existing)
	}

	// A partial match means the pair identifies a different record:
	// same username with another email, or the other way round. Both
	// are uniqueness violations, never a silent reuse.
	byUsername, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to check username", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to check username")
	}
	if byUsername != nil {
		return nil, fmt.Errorf("validation failed: username already taken")
	}

	byEmail, err := s.repo.User.FindByEmail(ctx, req.Email)
	if err != nil {
		s.log.Error("Failed to check email", zap.Error(err), zap.String("email", req.Email))
		return nil, fmt.Errorf("failed to check email")
	}
	if byEmail != nil {
		return nil, fmt.Errorf("validation failed: email already registered")
	}

	now := time.Now()
	user := &entity.User{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Username: req.Username,
		Email:    req.Email,
		Role:     entity.RoleUser,
		// A code is assigned at creation so token exchange is always
		// possible for a persisted account.
		ConfirmationCode: utils.GenerateConfirmationCode(),
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to create account")
	}

	s.sendConfirmationCode(user.Email, user.ConfirmationCode)

	s.log.Info("User signed up",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.SignupResponse{
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// resend rotates the confirmation code of an existing signup. The
// rotation is a single atomic UPDATE so two concurrent resends cannot
// interleave a read-then-write.
func (s *authService) resend(ctx context.Context, user *entity.User) (*response.SignupResponse, error) {
	code := utils.GenerateConfirmationCode()

	if err := s.repo.User.UpdateConfirmationCode(ctx, user.ID, code); err != nil {
		s.log.Error("Failed to rotate confirmation code",
			zap.Error(err),
			zap.String("user_id", user.ID.String()))
		return nil, fmt.Errorf("failed to rotate confirmation code")
	}

	s.sendConfirmationCode(user.Email, code)

	s.log.Info("Confirmation code resent",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.SignupResponse{
		Username: user.Username,
		Email:    user.Email,
	}, nil
}

// Token exchanges a confirmation code for a bearer access token.
func (s *authService) Token(ctx context.Context, req *request.TokenRequest) (*response.TokenResponse, error) {
	// A malformed payload reports its validation error, not "not
	// found", even when the username is unknown.
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Token validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	user, err := s.repo.User.FindByUsername(ctx, req.Username)
	if err != nil {
		s.log.Error("Failed to find user for token", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to find user")
	}
	if user == nil {
		return nil, fmt.Errorf("user %s not found", req.Username)
	}

	// Exact string comparison, no normalization, no expiry window.
	if req.ConfirmationCode != user.ConfirmationCode {
		s.log.Warn("Confirmation code mismatch", zap.String("username", req.Username))
		return nil, fmt.Errorf("invalid confirmation code")
	}

	expiry := time.Duration(s.config.JWT.ExpiryHours) * time.Hour
	token, err := utils.GenerateAccessToken(
		s.config.JWT.Secret, expiry, user.ID, user.Username, string(user.Role))
	if err != nil {
		s.log.Error("Failed to mint access token", zap.Error(err), zap.String("username", req.Username))
		return nil, fmt.Errorf("failed to mint access token")
	}

	s.log.Info("Access token issued",
		zap.String("user_id", user.ID.String()),
		zap.String("username", user.Username))

	return &response.TokenResponse{
		Token: "Bearer " + token,
	}, nil
}

// sendConfirmationCode dispatches the code by email, best-effort. A
// failed delivery is logged and swallowed; the user can always invoke
// the resend branch.
func (s *authService) sendConfirmationCode(email, code string) {
	body := fmt.Sprintf(
		"Your confirmation code: %s\n"+
			"Submit it together with your username at /api/v1/auth/token to finish registration.",
		code)

	if err := s.mail.Send(email, "Registration confirmation", body); err != nil {
		s.log.Warn("Failed to send confirmation code",
			zap.Error(err),
			zap.String("email", email))
	}
}
