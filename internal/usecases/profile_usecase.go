package usecases

import (
	"context"
	"errors"
	"net/http"

	"pet-ai.backend/internal/domain/entities"
	domainerrors "pet-ai.backend/internal/domain/errors"
	"pet-ai.backend/internal/domain/repositories"
)

const verificationCodeMessage = "Invalid or expired verification code."

// ProfileUsecase handles the authenticated user's own profile
type ProfileUsecase struct {
	userRepo     repositories.UserRepository
	verification *VerificationService
}

// NewProfileUsecase creates a new profile usecase
func NewProfileUsecase(userRepo repositories.UserRepository, verification *VerificationService) *ProfileUsecase {
	return &ProfileUsecase{
		userRepo:     userRepo,
		verification: verification,
	}
}

// UpdateProfile applies a partial update: display name is replaced when
// present and the settings patch is shallow-merged over the stored map.
func (u *ProfileUsecase) UpdateProfile(ctx context.Context, user *entities.User, input *entities.UpdateProfileInput) (*entities.User, error) {
	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}
	if input.Settings != nil {
		user.Settings = user.Settings.Merge(input.Settings)
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// SendVerificationCode mails a fresh verification code to an unverified user
func (u *ProfileUsecase) SendVerificationCode(ctx context.Context, user *entities.User) error {
	if user.EmailVerified {
		return domainerrors.BadRequest("Email is already verified.")
	}

	if err := u.verification.Issue(ctx, user, CodeKindEmailVerification); err != nil {
		return domainerrors.NewAppError(http.StatusInternalServerError,
			"Failed to send verification email.", err)
	}
	return nil
}

// VerifyEmail redeems a verification code and marks the user's email
// verified. Unknown and expired codes surface as the same error.
func (u *ProfileUsecase) VerifyEmail(ctx context.Context, user *entities.User, code string) error {
	if user.EmailVerified {
		return domainerrors.BadRequest("Email is already verified.")
	}

	err := u.verification.Redeem(ctx, user, code, func(txCtx context.Context) error {
		user.EmailVerified = true
		return u.userRepo.Update(txCtx, user)
	})
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) || errors.Is(err, domainerrors.ErrCodeExpired) {
			return domainerrors.BadRequest(verificationCodeMessage)
		}
		return err
	}
	return nil
}
