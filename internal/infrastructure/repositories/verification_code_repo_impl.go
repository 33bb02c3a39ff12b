package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"pet-ai.backend/internal/domain/entities"
	domainerrors "pet-ai.backend/internal/domain/errors"
	"pet-ai.backend/internal/infrastructure/models"
)

// VerificationCodeRepository implements verification code operations
type VerificationCodeRepository struct {
	db *gorm.DB
}

// NewVerificationCodeRepository creates a new verification code repository
func NewVerificationCodeRepository(db *gorm.DB) *VerificationCodeRepository {
	return &VerificationCodeRepository{db: db}
}

// Create creates a new verification code
func (r *VerificationCodeRepository) Create(ctx context.Context, code *entities.VerificationCode) error {
	if code.ID == uuid.Nil {
		code.ID = uuid.New()
	}
	if code.CreatedAt.IsZero() {
		code.CreatedAt = time.Now()
	}

	m := &models.VerificationCode{
		ID:        code.ID,
		UserID:    code.UserID,
		Code:      code.Code,
		ExpiresAt: code.ExpiresAt,
		Used:      code.Used,
		CreatedAt: code.CreatedAt,
	}

	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetLatest returns the most recently created code matching user and code value
func (r *VerificationCodeRepository) GetLatest(ctx context.Context, userID uuid.UUID, code string) (*entities.VerificationCode, error) {
	var m models.VerificationCode
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND code = ?", userID, code).
		Order("created_at DESC").
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}

	return &entities.VerificationCode{
		ID:        m.ID,
		UserID:    m.UserID,
		Code:      m.Code,
		ExpiresAt: m.ExpiresAt,
		Used:      m.Used,
		CreatedAt: m.CreatedAt,
	}, nil
}

// MarkUsed marks a verification code as used
func (r *VerificationCodeRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.VerificationCode{}).
		Where("id = ? AND used = ?", id, false).
		Update("used", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete removes a single verification code
func (r *VerificationCodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Delete(&models.VerificationCode{}, "id = ?", id).Error
}

// DeleteByUser removes all verification codes for a user
func (r *VerificationCodeRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Delete(&models.VerificationCode{}, "user_id = ?", userID).Error
}
