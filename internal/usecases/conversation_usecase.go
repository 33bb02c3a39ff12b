package usecases

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"pet-ai.backend/internal/config"
	"pet-ai.backend/internal/domain/entities"
	domainerrors "pet-ai.backend/internal/domain/errors"
	"pet-ai.backend/internal/domain/repositories"
	"pet-ai.backend/internal/infrastructure/llm"
	"pet-ai.backend/pkg/logger"
)

// ConversationUsecase relays user turns to the upstream model and persists
// the exchange.
type ConversationUsecase struct {
	chatRepo    repositories.ChatRepository
	messageRepo repositories.MessageRepository
	uow         repositories.UnitOfWork
	client      llm.CompletionClient
	cfg         config.OpenRouterConfig
}

// NewConversationUsecase creates a new conversation usecase
func NewConversationUsecase(
	chatRepo repositories.ChatRepository,
	messageRepo repositories.MessageRepository,
	uow repositories.UnitOfWork,
	client llm.CompletionClient,
	cfg config.OpenRouterConfig,
) *ConversationUsecase {
	return &ConversationUsecase{
		chatRepo:    chatRepo,
		messageRepo: messageRepo,
		uow:         uow,
		client:      client,
		cfg:         cfg,
	}
}

// SendMessage appends the user's turn to the chat, calls the model with the
// recent history, and persists the assistant's reply. The user turn is
// committed before the upstream call so it survives upstream failures.
func (u *ConversationUsecase) SendMessage(ctx context.Context, userID, chatID uuid.UUID, content string) (*entities.Message, error) {
	// the exchange must complete even if the client disconnects mid-request
	ctx = context.WithoutCancel(ctx)

	chat, err := u.chatRepo.GetByID(ctx, userID, chatID)
	if err != nil {
		return nil, chatNotFound(err)
	}

	if u.cfg.APIKey == "" {
		return nil, domainerrors.NewAppError(http.StatusInternalServerError,
			"OpenRouter API key is not configured.", domainerrors.ErrUpstreamNotConfigured)
	}

	userMsg := &entities.Message{
		ChatID:  chat.ID,
		Role:    entities.RoleUser,
		Content: content,
	}
	if err := u.messageRepo.Create(ctx, userMsg); err != nil {
		return nil, err
	}

	history, err := u.buildHistory(ctx, chat.ID)
	if err != nil {
		return nil, err
	}

	reply, err := u.client.Complete(ctx, chat.ModelName, history)
	if err != nil {
		return nil, mapUpstreamError(ctx, err)
	}

	assistantMsg := &entities.Message{
		ChatID:    chat.ID,
		Role:      entities.RoleAssistant,
		Content:   reply,
		ModelName: null.StringFrom(chat.ModelName),
	}
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.messageRepo.Create(txCtx, assistantMsg); err != nil {
			return err
		}
		return u.chatRepo.Touch(txCtx, chat.ID, time.Now())
	})
	if err != nil {
		return nil, err
	}

	return assistantMsg, nil
}

// buildHistory assembles the completion payload: the configured system
// prompt followed by the most recent turns in chronological order.
func (u *ConversationUsecase) buildHistory(ctx context.Context, chatID uuid.UUID) ([]llm.Message, error) {
	recent, err := u.messageRepo.ListRecent(ctx, chatID, u.cfg.MaxHistory)
	if err != nil {
		return nil, err
	}

	history := make([]llm.Message, 0, len(recent)+1)
	history = append(history, llm.Message{Role: string(entities.RoleSystem), Content: u.cfg.SystemPrompt})
	// recent is newest-first
	for i := len(recent) - 1; i >= 0; i-- {
		history = append(history, llm.Message{Role: string(recent[i].Role), Content: recent[i].Content})
	}
	return history, nil
}

func mapUpstreamError(ctx context.Context, err error) error {
	var upstreamErr *domainerrors.UpstreamError
	if errors.As(err, &upstreamErr) {
		logger.Warn(ctx, "upstream model call failed",
			zap.Int("status", upstreamErr.Status), zap.String("body", upstreamErr.Body))
		return domainerrors.BadGateway(
			fmt.Sprintf("OpenRouter error (status %d).", upstreamErr.Status), err)
	}
	if errors.Is(err, domainerrors.ErrUpstreamBadResponse) {
		return domainerrors.BadGateway("Invalid response format from OpenRouter.", err)
	}
	return domainerrors.BadGateway("Failed to contact OpenRouter.", err)
}
