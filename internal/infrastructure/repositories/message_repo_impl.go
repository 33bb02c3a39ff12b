package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"pet-ai.backend/internal/domain/entities"
	"pet-ai.backend/internal/infrastructure/models"
)

// MessageRepository implements message operations
type MessageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new message repository
func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

// Create creates a new message
func (r *MessageRepository) Create(ctx context.Context, message *entities.Message) error {
	if message.ID == uuid.Nil {
		message.ID = uuid.New()
	}
	if message.CreatedAt.IsZero() {
		message.CreatedAt = time.Now()
	}

	m := &models.Message{
		ID:        message.ID,
		ChatID:    message.ChatID,
		Role:      string(message.Role),
		Content:   message.Content,
		ModelName: message.ModelName.Ptr(),
		CreatedAt: message.CreatedAt,
	}

	return GetDB(ctx, r.db).WithContext(ctx).Create(m).Error
}

// ListByChat returns all messages of a chat oldest-first
func (r *MessageRepository) ListByChat(ctx context.Context, chatID uuid.UUID) ([]*entities.Message, error) {
	var messageModels []models.Message
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at ASC").
		Find(&messageModels).Error
	if err != nil {
		return nil, err
	}
	return messagesToEntities(messageModels), nil
}

// ListRecent returns up to limit messages newest-first
func (r *MessageRepository) ListRecent(ctx context.Context, chatID uuid.UUID, limit int) ([]*entities.Message, error) {
	var messageModels []models.Message
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("created_at DESC").
		Limit(limit).
		Find(&messageModels).Error
	if err != nil {
		return nil, err
	}
	return messagesToEntities(messageModels), nil
}

func messagesToEntities(messageModels []models.Message) []*entities.Message {
	messages := make([]*entities.Message, 0, len(messageModels))
	for i := range messageModels {
		m := &messageModels[i]
		messages = append(messages, &entities.Message{
			ID:        m.ID,
			ChatID:    m.ChatID,
			Role:      entities.MessageRole(m.Role),
			Content:   m.Content,
			ModelName: null.StringFromPtr(m.ModelName),
			CreatedAt: m.CreatedAt,
		})
	}
	return messages
}
