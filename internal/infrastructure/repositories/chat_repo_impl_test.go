package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pet-ai.backend/internal/domain/entities"
	domainerrors "pet-ai.backend/internal/domain/errors"
)

func TestChatRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createChatTable(t, db)
	repo := NewChatRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	chat := &entities.Chat{UserID: userID, Title: "New Chat", ModelName: "test-model"}
	require.NoError(t, repo.Create(ctx, chat))
	require.NotEqual(t, uuid.Nil, chat.ID)

	got, err := repo.GetByID(ctx, userID, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "New Chat", got.Title)
	assert.Equal(t, "test-model", got.ModelName)
}

func TestChatRepository_GetByID_ForeignOwnerIsNotFound(t *testing.T) {
	db := newTestDB(t)
	createChatTable(t, db)
	repo := NewChatRepository(db)
	ctx := context.Background()

	chat := &entities.Chat{UserID: uuid.New(), Title: "Mine", ModelName: "m"}
	require.NoError(t, repo.Create(ctx, chat))

	_, err := repo.GetByID(ctx, uuid.New(), chat.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestChatRepository_ListByUser_NewestUpdatedFirst(t *testing.T) {
	db := newTestDB(t)
	createChatTable(t, db)
	repo := NewChatRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	first := &entities.Chat{UserID: userID, Title: "first", ModelName: "m"}
	second := &entities.Chat{UserID: userID, Title: "second", ModelName: "m"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	// bump the older chat so it sorts first
	require.NoError(t, repo.Touch(ctx, first.ID, time.Now().Add(time.Hour)))

	chats, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, chats, 2)
	assert.Equal(t, "first", chats[0].Title)
	assert.Equal(t, "second", chats[1].Title)
}

func TestChatRepository_UpdateTitle(t *testing.T) {
	db := newTestDB(t)
	createChatTable(t, db)
	repo := NewChatRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	chat := &entities.Chat{UserID: userID, Title: "old", ModelName: "m"}
	require.NoError(t, repo.Create(ctx, chat))

	require.NoError(t, repo.UpdateTitle(ctx, userID, chat.ID, "renamed"))

	got, err := repo.GetByID(ctx, userID, chat.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Title)

	assert.ErrorIs(t, repo.UpdateTitle(ctx, uuid.New(), chat.ID, "stolen"), domainerrors.ErrNotFound)
}

func TestChatRepository_DeleteCascadesToMessages(t *testing.T) {
	db := newTestDB(t)
	createChatTable(t, db)
	createMessageTable(t, db)
	chatRepo := NewChatRepository(db)
	msgRepo := NewMessageRepository(db)
	ctx := context.Background()
	userID := uuid.New()

	chat := &entities.Chat{UserID: userID, Title: "t", ModelName: "m"}
	require.NoError(t, chatRepo.Create(ctx, chat))
	require.NoError(t, msgRepo.Create(ctx, &entities.Message{ChatID: chat.ID, Role: entities.RoleUser, Content: "hi"}))

	require.NoError(t, chatRepo.Delete(ctx, userID, chat.ID))

	_, err := chatRepo.GetByID(ctx, userID, chat.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	msgs, err := msgRepo.ListByChat(ctx, chat.ID)
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestChatRepository_DeleteForeignOwner(t *testing.T) {
	db := newTestDB(t)
	createChatTable(t, db)
	repo := NewChatRepository(db)
	ctx := context.Background()

	chat := &entities.Chat{UserID: uuid.New(), Title: "t", ModelName: "m"}
	require.NoError(t, repo.Create(ctx, chat))

	assert.ErrorIs(t, repo.Delete(ctx, uuid.New(), chat.ID), domainerrors.ErrNotFound)
}
