package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const RequestIDKey = "request_id"

// RequestIDMiddleware generates a unique ID for each request
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}

		c.Set(RequestIDKey, id)
		c.Header("X-Request-ID", id)

		// Also set in the request context so logger.WithContext finds it
		ctx := context.WithValue(c.Request.Context(), "request_id", id) //nolint:staticcheck // string key matches pkg/logger
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
