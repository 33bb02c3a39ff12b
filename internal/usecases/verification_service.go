package usecases

import (
	"context"
	"time"

	"go.uber.org/zap"
	"pet-ai.backend/internal/domain/entities"
	domainerrors "pet-ai.backend/internal/domain/errors"
	"pet-ai.backend/internal/domain/repositories"
	"pet-ai.backend/internal/infrastructure/email"
	"pet-ai.backend/pkg/crypto"
	"pet-ai.backend/pkg/logger"
)

// CodeKind selects which email template carries an issued code
type CodeKind int

const (
	CodeKindEmailVerification CodeKind = iota
	CodeKindPasswordReset
)

// VerificationService issues and redeems short-lived email codes. Both the
// email verification and password reset flows funnel through it.
type VerificationService struct {
	codeRepo repositories.VerificationCodeRepository
	sender   email.Sender
	uow      repositories.UnitOfWork
}

// NewVerificationService creates a new verification service
func NewVerificationService(
	codeRepo repositories.VerificationCodeRepository,
	sender email.Sender,
	uow repositories.UnitOfWork,
) *VerificationService {
	return &VerificationService{
		codeRepo: codeRepo,
		sender:   sender,
		uow:      uow,
	}
}

// issue replaces any earlier codes for the user with a fresh one
func (s *VerificationService) issue(ctx context.Context, user *entities.User) (*entities.VerificationCode, error) {
	code, err := crypto.GenerateVerificationCode()
	if err != nil {
		return nil, err
	}

	record := &entities.VerificationCode{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: time.Now().Add(entities.CodeExpiry),
	}

	err = s.uow.Do(ctx, func(txCtx context.Context) error {
		if err := s.codeRepo.DeleteByUser(txCtx, user.ID); err != nil {
			return err
		}
		return s.codeRepo.Create(txCtx, record)
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *VerificationService) sendCode(ctx context.Context, to, code string, kind CodeKind) error {
	if kind == CodeKindPasswordReset {
		return s.sender.SendPasswordResetCode(ctx, to, code)
	}
	return s.sender.SendVerificationCode(ctx, to, code)
}

// Issue creates a fresh code for the user and emails it. A delivery failure
// removes the fresh code row again and surfaces the error.
func (s *VerificationService) Issue(ctx context.Context, user *entities.User, kind CodeKind) error {
	record, err := s.issue(ctx, user)
	if err != nil {
		return err
	}

	if err := s.sendCode(ctx, user.Email, record.Code, kind); err != nil {
		if delErr := s.codeRepo.Delete(ctx, record.ID); delErr != nil {
			logger.Warn(ctx, "failed to remove undelivered verification code",
				zap.String("user_id", user.ID.String()), zap.Error(delErr))
		}
		return err
	}
	return nil
}

// IssueBestEffort creates a fresh code and attempts delivery, swallowing any
// failure. The code row is kept so the user can still request a resend. Used
// by registration, which must never fail on mail trouble.
func (s *VerificationService) IssueBestEffort(ctx context.Context, user *entities.User, kind CodeKind) {
	record, err := s.issue(ctx, user)
	if err != nil {
		logger.Warn(ctx, "failed to issue verification code",
			zap.String("user_id", user.ID.String()), zap.Error(err))
		return
	}

	if err := s.sendCode(ctx, user.Email, record.Code, kind); err != nil {
		logger.Warn(ctx, "failed to send verification email",
			zap.String("user_id", user.ID.String()), zap.Error(err))
	}
}

// Redeem validates the user's code and, when valid, marks it used and runs
// apply in the same transaction. Returns domain ErrNotFound when no matching
// code exists and ErrCodeExpired when it is used or past its expiry.
func (s *VerificationService) Redeem(ctx context.Context, user *entities.User, code string, apply func(ctx context.Context) error) error {
	record, err := s.codeRepo.GetLatest(ctx, user.ID, code)
	if err != nil {
		return err
	}
	if !record.IsValid(time.Now()) {
		return domainerrors.ErrCodeExpired
	}

	return s.uow.Do(ctx, func(txCtx context.Context) error {
		if err := s.codeRepo.MarkUsed(txCtx, record.ID); err != nil {
			return err
		}
		return apply(txCtx)
	})
}
