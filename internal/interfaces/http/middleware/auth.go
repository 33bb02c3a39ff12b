package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"pet-ai.backend/internal/domain/entities"
	"pet-ai.backend/internal/domain/repositories"
	"pet-ai.backend/pkg/jwt"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// CurrentUserKey is the context key for the authenticated user
	CurrentUserKey = "currentUser"

	credentialsMessage = "Could not validate credentials."
)

// AuthMiddleware validates the bearer token and loads the account behind it.
// Every failure mode collapses to the same 401 so the response leaks nothing
// about which step rejected the request.
func AuthMiddleware(jwtService *jwt.JWTService, userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abortUnauthorized(c)
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			abortUnauthorized(c)
			return
		}

		userID, err := uuid.Parse(claims.Subject)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), userID)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": credentialsMessage})
}

// GetCurrentUser gets the authenticated user from context
func GetCurrentUser(c *gin.Context) (*entities.User, bool) {
	value, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*entities.User)
	return user, ok
}
