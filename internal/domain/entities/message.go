package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// MessageRole identifies the author of a message
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleSystem    MessageRole = "system"
)

// Message represents a single turn in a chat. Messages are immutable once
// created; ModelName is set only on assistant turns.
type Message struct {
	ID        uuid.UUID   `json:"id"`
	ChatID    uuid.UUID   `json:"chat_id"`
	Role      MessageRole `json:"role"`
	Content   string      `json:"content"`
	ModelName null.String `json:"model_name"`
	CreatedAt time.Time   `json:"created_at"`
}

// SendMessageInput represents input for appending a user turn
type SendMessageInput struct {
	Content string `json:"content" binding:"required,min=1,max=4000"`
}
