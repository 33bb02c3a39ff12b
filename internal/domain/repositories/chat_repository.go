package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"pet-ai.backend/internal/domain/entities"
)

// ChatRepository defines chat thread operations. Lookups take the owning
// user's ID so ownership is enforced inside the query itself.
type ChatRepository interface {
	Create(ctx context.Context, chat *entities.Chat) error
	// GetByID returns the chat only when it belongs to userID.
	GetByID(ctx context.Context, userID, chatID uuid.UUID) (*entities.Chat, error)
	// ListByUser returns the user's chats newest-updated-first.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Chat, error)
	UpdateTitle(ctx context.Context, userID, chatID uuid.UUID, title string) error
	// Touch advances the chat's updated_at timestamp.
	Touch(ctx context.Context, chatID uuid.UUID, at time.Time) error
	// Delete removes the chat and, via the cascade, its messages.
	Delete(ctx context.Context, userID, chatID uuid.UUID) error
}

// MessageRepository defines message operations within a chat
type MessageRepository interface {
	Create(ctx context.Context, message *entities.Message) error
	// ListByChat returns all messages oldest-first.
	ListByChat(ctx context.Context, chatID uuid.UUID) ([]*entities.Message, error)
	// ListRecent returns up to limit messages newest-first.
	ListRecent(ctx context.Context, chatID uuid.UUID, limit int) ([]*entities.Message, error)
}
