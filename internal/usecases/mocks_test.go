package usecases_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"pet-ai.backend/internal/domain/entities"
	"pet-ai.backend/internal/infrastructure/llm"
)

// Mock UnitOfWork
type MockUnitOfWork struct {
	mock.Mock
}

func (m *MockUnitOfWork) Do(ctx context.Context, f func(context.Context) error) error {
	m.Called(ctx, f)
	return f(ctx)
}

// Mock UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *entities.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Mock VerificationCodeRepository
type MockVerificationCodeRepository struct {
	mock.Mock
}

func (m *MockVerificationCodeRepository) Create(ctx context.Context, code *entities.VerificationCode) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *MockVerificationCodeRepository) GetLatest(ctx context.Context, userID uuid.UUID, code string) (*entities.VerificationCode, error) {
	args := m.Called(ctx, userID, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.VerificationCode), args.Error(1)
}

func (m *MockVerificationCodeRepository) MarkUsed(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVerificationCodeRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVerificationCodeRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// Mock ChatRepository
type MockChatRepository struct {
	mock.Mock
}

func (m *MockChatRepository) Create(ctx context.Context, chat *entities.Chat) error {
	args := m.Called(ctx, chat)
	return args.Error(0)
}

func (m *MockChatRepository) GetByID(ctx context.Context, userID, chatID uuid.UUID) (*entities.Chat, error) {
	args := m.Called(ctx, userID, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Chat), args.Error(1)
}

func (m *MockChatRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entities.Chat, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Chat), args.Error(1)
}

func (m *MockChatRepository) UpdateTitle(ctx context.Context, userID, chatID uuid.UUID, title string) error {
	args := m.Called(ctx, userID, chatID, title)
	return args.Error(0)
}

func (m *MockChatRepository) Touch(ctx context.Context, chatID uuid.UUID, at time.Time) error {
	args := m.Called(ctx, chatID, at)
	return args.Error(0)
}

func (m *MockChatRepository) Delete(ctx context.Context, userID, chatID uuid.UUID) error {
	args := m.Called(ctx, userID, chatID)
	return args.Error(0)
}

// Mock MessageRepository
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, message *entities.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockMessageRepository) ListByChat(ctx context.Context, chatID uuid.UUID) ([]*entities.Message, error) {
	args := m.Called(ctx, chatID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Message), args.Error(1)
}

func (m *MockMessageRepository) ListRecent(ctx context.Context, chatID uuid.UUID, limit int) ([]*entities.Message, error) {
	args := m.Called(ctx, chatID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Message), args.Error(1)
}

// Mock email Sender
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendVerificationCode(ctx context.Context, to, code string) error {
	args := m.Called(ctx, to, code)
	return args.Error(0)
}

func (m *MockEmailSender) SendPasswordResetCode(ctx context.Context, to, code string) error {
	args := m.Called(ctx, to, code)
	return args.Error(0)
}

// Mock CompletionClient
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) Complete(ctx context.Context, model string, messages []llm.Message) (string, error) {
	args := m.Called(ctx, model, messages)
	return args.String(0), args.Error(1)
}
