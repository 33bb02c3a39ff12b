package response

import (
	"errors"

	"github.com/gin-gonic/gin"
	domainerrors "pet-ai.backend/internal/domain/errors"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. AppErrors carry their own HTTP status and
// client message; anything else becomes a generic 500.
func Error(c *gin.Context, err error) {
	var appErr *domainerrors.AppError
	if !errors.As(err, &appErr) {
		appErr = domainerrors.InternalError(err)
	}

	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}

// BindingError sends a 400 for request body validation failures
func BindingError(c *gin.Context, err error) {
	Error(c, domainerrors.BadRequest(err.Error()))
}
