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

// ChatRepository implements chat thread operations
type ChatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *gorm.DB) *ChatRepository {
	return &ChatRepository{db: db}
}

// Create creates a new chat
func (r *ChatRepository) Create(ctx context.Context, chat *entities.Chat) error {
	if chat.ID == uuid.Nil {
		chat.ID = uuid.New()
	}
	now := time.Now()
	chat.CreatedAt = now
	chat.UpdatedAt = now

	m := &models.Chat{
		ID:        chat.ID,
		UserID:    chat.UserID,
		Title:     chat.Title,
		ModelName: chat.ModelName,
		CreatedAt: chat.CreatedAt,
		UpdatedAt: chat.UpdatedAt,
	}

	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// GetByID returns the chat only when it belongs to userID. Missing and
// foreign-owned chats are indistinguishable to the caller.
func (r *ChatRepository) GetByID(ctx context.Context, userID, chatID uuid.UUID) (*entities.Chat, error) {
	var m models.Chat
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("id = ? AND user_id = ?", chatID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return chatToEntity(&m), nil
}

// ListByUser returns the user's chats newest-updated-first
func (r *ChatRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Chat, error) {
	var chatModels []models.Chat
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&chatModels).Error
	if err != nil {
		return nil, err
	}

	chats := make([]*entities.Chat, 0, len(chatModels))
	for i := range chatModels {
		chats = append(chats, chatToEntity(&chatModels[i]))
	}
	return chats, nil
}

// UpdateTitle renames a chat owned by userID
func (r *ChatRepository) UpdateTitle(ctx context.Context, userID, chatID uuid.UUID, title string) error {
	result := GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Chat{}).
		Where("id = ? AND user_id = ?", chatID, userID).
		Updates(map[string]interface{}{
			"title":      title,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Touch advances the chat's updated_at timestamp
func (r *ChatRepository) Touch(ctx context.Context, chatID uuid.UUID, at time.Time) error {
	return GetDB(ctx, r.db).WithContext(ctx).
		Model(&models.Chat{}).
		Where("id = ?", chatID).
		Update("updated_at", at).Error
}

// Delete removes a chat and its messages. The message delete is explicit so
// the cascade does not depend on the driver enforcing foreign keys.
func (r *ChatRepository) Delete(ctx context.Context, userID, chatID uuid.UUID) error {
	db := GetDB(ctx, r.db).WithContext(ctx)

	result := db.Delete(&models.Chat{}, "id = ? AND user_id = ?", chatID, userID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}

	return db.Delete(&models.Message{}, "chat_id = ?", chatID).Error
}

func chatToEntity(m *models.Chat) *entities.Chat {
	return &entities.Chat{
		ID:        m.ID,
		UserID:    m.UserID,
		Title:     m.Title,
		ModelName: m.ModelName,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Messages:  []entities.Message{},
	}
}
