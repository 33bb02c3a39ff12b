package repositories

import (
	"context"

	"github.com/google/uuid"
	"pet-ai.backend/internal/domain/entities"
)

// UserRepository defines user data operations
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	Update(ctx context.Context, user *entities.User) error
}

// VerificationCodeRepository defines verification code operations
type VerificationCodeRepository interface {
	Create(ctx context.Context, code *entities.VerificationCode) error
	// GetLatest returns the most recently created code matching user and code value.
	GetLatest(ctx context.Context, userID uuid.UUID, code string) (*entities.VerificationCode, error)
	MarkUsed(ctx context.Context, id uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByUser(ctx context.Context, userID uuid.UUID) error
}
