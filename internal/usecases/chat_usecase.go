package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"pet-ai.backend/internal/domain/entities"
	domainerrors "pet-ai.backend/internal/domain/errors"
	"pet-ai.backend/internal/domain/repositories"
)

const chatNotFoundMessage = "Chat not found."

// ChatUsecase handles chat thread management. Missing and foreign-owned
// chats are indistinguishable to the caller.
type ChatUsecase struct {
	chatRepo     repositories.ChatRepository
	messageRepo  repositories.MessageRepository
	defaultModel string
}

// NewChatUsecase creates a new chat usecase
func NewChatUsecase(
	chatRepo repositories.ChatRepository,
	messageRepo repositories.MessageRepository,
	defaultModel string,
) *ChatUsecase {
	return &ChatUsecase{
		chatRepo:     chatRepo,
		messageRepo:  messageRepo,
		defaultModel: defaultModel,
	}
}

func chatNotFound(err error) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound(chatNotFoundMessage)
	}
	return err
}

// ListChats returns the user's chats newest-updated-first
func (u *ChatUsecase) ListChats(ctx context.Context, userID uuid.UUID) ([]*entities.Chat, error) {
	return u.chatRepo.ListByUser(ctx, userID)
}

// CreateChat creates a chat thread, filling in the default title and model
// when the caller omits them.
func (u *ChatUsecase) CreateChat(ctx context.Context, userID uuid.UUID, input *entities.CreateChatInput) (*entities.Chat, error) {
	chat := &entities.Chat{
		UserID:    userID,
		Title:     entities.DefaultChatTitle,
		ModelName: u.defaultModel,
		Messages:  []entities.Message{},
	}
	if input.Title != nil {
		chat.Title = *input.Title
	}
	if input.ModelName != nil {
		chat.ModelName = *input.ModelName
	}

	if err := u.chatRepo.Create(ctx, chat); err != nil {
		return nil, err
	}
	return chat, nil
}

// GetChat returns the user's chat, optionally with its messages oldest-first
func (u *ChatUsecase) GetChat(ctx context.Context, userID, chatID uuid.UUID, withMessages bool) (*entities.Chat, error) {
	chat, err := u.chatRepo.GetByID(ctx, userID, chatID)
	if err != nil {
		return nil, chatNotFound(err)
	}

	if withMessages {
		msgs, err := u.messageRepo.ListByChat(ctx, chatID)
		if err != nil {
			return nil, err
		}
		chat.Messages = make([]entities.Message, 0, len(msgs))
		for _, m := range msgs {
			chat.Messages = append(chat.Messages, *m)
		}
	}
	return chat, nil
}

// RenameChat sets a new title on the user's chat
func (u *ChatUsecase) RenameChat(ctx context.Context, userID, chatID uuid.UUID, title string) (*entities.Chat, error) {
	if err := u.chatRepo.UpdateTitle(ctx, userID, chatID, title); err != nil {
		return nil, chatNotFound(err)
	}
	chat, err := u.chatRepo.GetByID(ctx, userID, chatID)
	if err != nil {
		return nil, chatNotFound(err)
	}
	return chat, nil
}

// DeleteChat removes the user's chat and its messages
func (u *ChatUsecase) DeleteChat(ctx context.Context, userID, chatID uuid.UUID) error {
	if err := u.chatRepo.Delete(ctx, userID, chatID); err != nil {
		return chatNotFound(err)
	}
	return nil
}

// ListMessages returns the chat's messages oldest-first after checking the
// chat belongs to the user.
func (u *ChatUsecase) ListMessages(ctx context.Context, userID, chatID uuid.UUID) ([]*entities.Message, error) {
	if _, err := u.chatRepo.GetByID(ctx, userID, chatID); err != nil {
		return nil, chatNotFound(err)
	}
	return u.messageRepo.ListByChat(ctx, chatID)
}
