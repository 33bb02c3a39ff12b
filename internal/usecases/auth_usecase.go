package usecases

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"
	"pet-ai.backend/internal/domain/entities"
	domainerrors "pet-ai.backend/internal/domain/errors"
	"pet-ai.backend/internal/domain/repositories"
	"pet-ai.backend/pkg/crypto"
	"pet-ai.backend/pkg/jwt"
	"pet-ai.backend/pkg/logger"
)

const resetCodeMessage = "Invalid or expired reset code."

// AuthUsecase handles registration, login and password recovery
type AuthUsecase struct {
	userRepo       repositories.UserRepository
	verification   *VerificationService
	jwtService     *jwt.JWTService
	smtpConfigured bool
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	verification *VerificationService,
	jwtService *jwt.JWTService,
	smtpConfigured bool,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:       userRepo,
		verification:   verification,
		jwtService:     jwtService,
		smtpConfigured: smtpConfigured,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user account. When mail is configured, a
// verification code is sent best-effort; delivery trouble never fails
// the registration.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.User, error) {
	emailAddr := normalizeEmail(input.Email)

	if _, err := u.userRepo.GetByEmail(ctx, emailAddr); err == nil {
		return nil, domainerrors.Conflict("Email is already registered.")
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	hash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        emailAddr,
		DisplayName:  input.DisplayName,
		PasswordHash: hash,
		Settings:     entities.SettingsMap{},
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", zap.String("user_id", user.ID.String()))

	if u.smtpConfigured {
		u.verification.IssueBestEffort(ctx, user, CodeKindEmailVerification)
	}
	return user, nil
}

// Login verifies credentials and returns the user with a signed access
// token. Unknown email and wrong password are indistinguishable.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	invalidCredentials := domainerrors.NewAppError(http.StatusUnauthorized,
		"Incorrect email or password.", domainerrors.ErrInvalidCredentials)

	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, invalidCredentials
		}
		return nil, err
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, invalidCredentials
	}

	token, err := u.jwtService.GenerateToken(user.ID.String(), nil)
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}

// RequestPasswordReset mails a reset code when the address belongs to an
// account. The outcome is always reported as success so the endpoint cannot
// be used to probe which emails are registered.
func (u *AuthUsecase) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(emailAddr))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil
		}
		return err
	}

	if err := u.verification.Issue(ctx, user, CodeKindPasswordReset); err != nil {
		logger.Warn(ctx, "failed to send password reset email",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}
	return nil
}

// ResetPassword redeems a reset code and replaces the user's password. A
// successful reset also marks the email verified since the code proved
// mailbox ownership. Unknown email, unknown code and expired code all
// surface as the same error.
func (u *AuthUsecase) ResetPassword(ctx context.Context, input *entities.PasswordResetInput) error {
	user, err := u.userRepo.GetByEmail(ctx, normalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.BadRequest(resetCodeMessage)
		}
		return err
	}

	err = u.verification.Redeem(ctx, user, input.Code, func(txCtx context.Context) error {
		hash, hashErr := crypto.HashPassword(input.NewPassword)
		if hashErr != nil {
			return hashErr
		}
		user.PasswordHash = hash
		user.EmailVerified = true
		return u.userRepo.Update(txCtx, user)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) || errors.Is(err, domainerrors.ErrCodeExpired) {
			return domainerrors.BadRequest(resetCodeMessage)
		}
		return err
	}

	logger.Info(ctx, "password reset", zap.String("user_id", user.ID.String()))
	return nil
}
