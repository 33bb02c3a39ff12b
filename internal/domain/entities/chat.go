package entities

import (
	"time"

	"github.com/google/uuid"
)

// DefaultChatTitle is the placeholder title for chats created without one.
const DefaultChatTitle = "New Chat"

// Chat represents a chat thread owned by a user
type Chat struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"-"`
	Title     string    `json:"title"`
	ModelName string    `json:"model_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Messages  []Message `json:"messages"`
}

// CreateChatInput represents input for creating a chat
type CreateChatInput struct {
	Title     *string `json:"title" binding:"omitempty,min=1,max=255"`
	ModelName *string `json:"model_name" binding:"omitempty,min=1,max=100"`
}

// UpdateChatInput represents input for renaming a chat
type UpdateChatInput struct {
	Title string `json:"title" binding:"required,min=1,max=255"`
}
