package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"pet-ai.backend/internal/domain/entities"
	domainerrors "pet-ai.backend/internal/domain/errors"
	"pet-ai.backend/internal/interfaces/http/response"
	"pet-ai.backend/internal/usecases"
)

// ChatHandler handles chat and message endpoints
type ChatHandler struct {
	chatUsecase         *usecases.ChatUsecase
	conversationUsecase *usecases.ConversationUsecase
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatUsecase *usecases.ChatUsecase, conversationUsecase *usecases.ConversationUsecase) *ChatHandler {
	return &ChatHandler{
		chatUsecase:         chatUsecase,
		conversationUsecase: conversationUsecase,
	}
}

// chatID parses the :id path parameter. An unparseable ID is reported as a
// missing chat, the same as a foreign-owned one.
func chatID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.NotFound("Chat not found."))
		return uuid.Nil, false
	}
	return id, true
}

// ListChats returns the caller's chats newest-updated-first
// GET /chats/
func (h *ChatHandler) ListChats(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	chats, err := h.chatUsecase.ListChats(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, chats)
}

// CreateChat creates a chat thread
// POST /chats/
func (h *ChatHandler) CreateChat(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input entities.CreateChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	chat, err := h.chatUsecase.CreateChat(c.Request.Context(), user.ID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, chat)
}

// GetChat returns a chat with its messages oldest-first
// GET /chats/:id
func (h *ChatHandler) GetChat(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := chatID(c)
	if !ok {
		return
	}

	chat, err := h.chatUsecase.GetChat(c.Request.Context(), user.ID, id, true)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, chat)
}

// UpdateChat renames a chat
// PATCH /chats/:id
func (h *ChatHandler) UpdateChat(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := chatID(c)
	if !ok {
		return
	}

	var input entities.UpdateChatInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	chat, err := h.chatUsecase.RenameChat(c.Request.Context(), user.ID, id, input.Title)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, chat)
}

// DeleteChat removes a chat and its messages
// DELETE /chats/:id
func (h *ChatHandler) DeleteChat(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := chatID(c)
	if !ok {
		return
	}

	if err := h.chatUsecase.DeleteChat(c.Request.Context(), user.ID, id); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListMessages returns a chat's messages oldest-first
// GET /chats/:id/messages
func (h *ChatHandler) ListMessages(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := chatID(c)
	if !ok {
		return
	}

	messages, err := h.chatUsecase.ListMessages(c.Request.Context(), user.ID, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, messages)
}

// SendMessage appends a user turn and returns the assistant's reply
// POST /chats/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := chatID(c)
	if !ok {
		return
	}

	var input entities.SendMessageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	message, err := h.conversationUsecase.SendMessage(c.Request.Context(), user.ID, id, input.Content)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, message)
}
