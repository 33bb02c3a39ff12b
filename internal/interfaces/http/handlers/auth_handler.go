package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pet-ai.backend/internal/domain/entities"
	"pet-ai.backend/internal/interfaces/http/response"
	"pet-ai.backend/internal/usecases"
)

// AuthHandler handles registration, login and password recovery endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase}
}

// Register handles user registration
// POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	user, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user)
}

// Login handles user login
// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp)
}

// RequestPasswordReset mails a reset code. The response is the same whether
// or not the email belongs to an account.
// POST /auth/request-password-reset
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	var input entities.PasswordResetRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	if err := h.authUsecase.RequestPasswordReset(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "If the email exists, a password reset code has been sent.",
	})
}

// ResetPassword redeems a reset code and sets a new password
// POST /auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input entities.PasswordResetInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	if err := h.authUsecase.ResetPassword(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Password has been reset successfully.",
	})
}
