package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pet-ai.backend/internal/domain/entities"
	domainerrors "pet-ai.backend/internal/domain/errors"
	"pet-ai.backend/internal/interfaces/http/middleware"
	"pet-ai.backend/internal/interfaces/http/response"
	"pet-ai.backend/internal/usecases"
)

// ProfileHandler handles the authenticated user's profile endpoints
type ProfileHandler struct {
	profileUsecase *usecases.ProfileUsecase
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileUsecase *usecases.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{profileUsecase: profileUsecase}
}

func currentUser(c *gin.Context) (*entities.User, bool) {
	user, ok := middleware.GetCurrentUser(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("Could not validate credentials."))
	}
	return user, ok
}

// GetMe returns the caller's profile
// GET /profile/me
func (h *ProfileHandler) GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, user)
}

// UpdateMe applies a partial profile update
// PATCH /profile/me
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input entities.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	updated, err := h.profileUsecase.UpdateProfile(c.Request.Context(), user, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, updated)
}

// SendVerificationCode mails a fresh verification code
// POST /profile/send-verification-code
func (h *ProfileHandler) SendVerificationCode(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	if err := h.profileUsecase.SendVerificationCode(c.Request.Context(), user); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Verification code sent.",
	})
}

// VerifyEmail redeems a verification code
// POST /profile/verify-email
func (h *ProfileHandler) VerifyEmail(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var input entities.VerifyEmailInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BindingError(c, err)
		return
	}

	if err := h.profileUsecase.VerifyEmail(c.Request.Context(), user, input.Code); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Email verified successfully.",
	})
}
