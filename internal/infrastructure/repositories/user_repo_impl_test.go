package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pet-ai.backend/internal/domain/entities"
	domainerrors "pet-ai.backend/internal/domain/errors"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entities.User{
		Email:        "amy@example.com",
		PasswordHash: "hash",
		DisplayName:  "Amy",
	}
	require.NoError(t, repo.Create(ctx, user))
	require.NotEqual(t, uuid.Nil, user.ID)

	byID, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "amy@example.com", byID.Email)
	assert.False(t, byID.EmailVerified)
	assert.Nil(t, byID.Settings)

	byEmail, err := repo.GetByEmail(ctx, "amy@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, byEmail.ID)
}

func TestUserRepository_GetNotFound(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entities.User{Email: "dup@example.com", PasswordHash: "h", DisplayName: "A"}))
	err := repo.Create(ctx, &entities.User{Email: "dup@example.com", PasswordHash: "h", DisplayName: "B"})
	assert.Error(t, err)
}

func TestUserRepository_UpdatePersistsSettings(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entities.User{Email: "amy@example.com", PasswordHash: "hash", DisplayName: "Amy"}
	require.NoError(t, repo.Create(ctx, user))

	user.DisplayName = "Amy B"
	user.EmailVerified = true
	user.Settings = entities.SettingsMap{"theme": "dark"}
	require.NoError(t, repo.Update(ctx, user))

	reloaded, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Amy B", reloaded.DisplayName)
	assert.True(t, reloaded.EmailVerified)
	assert.Equal(t, "dark", reloaded.Settings["theme"])
}

func TestUserRepository_UpdateNotFound(t *testing.T) {
	db := newTestDB(t)
	createUserTable(t, db)
	repo := NewUserRepository(db)

	err := repo.Update(context.Background(), &entities.User{ID: uuid.New(), DisplayName: "ghost"})
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}
