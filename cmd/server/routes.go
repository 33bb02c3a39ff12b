package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"pet-ai.backend/internal/interfaces/http/handlers"
)

type routeDeps struct {
	authHandler    *handlers.AuthHandler
	profileHandler *handlers.ProfileHandler
	chatHandler    *handlers.ChatHandler
	authMiddleware gin.HandlerFunc
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	// Auth routes (public)
	auth := r.Group("/auth")
	{
		auth.POST("/register", d.authHandler.Register)
		auth.POST("/login", d.authHandler.Login)
		auth.POST("/request-password-reset", d.authHandler.RequestPasswordReset)
		auth.POST("/reset-password", d.authHandler.ResetPassword)
	}

	// Profile routes (protected)
	profile := r.Group("/profile")
	profile.Use(d.authMiddleware)
	{
		profile.GET("/me", d.profileHandler.GetMe)
		profile.PATCH("/me", d.profileHandler.UpdateMe)
		profile.POST("/send-verification-code", d.profileHandler.SendVerificationCode)
		profile.POST("/verify-email", d.profileHandler.VerifyEmail)
	}

	// Chat routes (protected)
	chats := r.Group("/chats")
	chats.Use(d.authMiddleware)
	{
		chats.GET("/", d.chatHandler.ListChats)
		chats.POST("/", d.chatHandler.CreateChat)
		chats.GET("/:id", d.chatHandler.GetChat)
		chats.PATCH("/:id", d.chatHandler.UpdateChat)
		chats.DELETE("/:id", d.chatHandler.DeleteChat)
		chats.GET("/:id/messages", d.chatHandler.ListMessages)
		chats.POST("/:id/messages", d.chatHandler.SendMessage)
	}
}

// applyCORSMiddleware allows the configured browser origins. The origin is
// echoed back rather than wildcarded so credentialed requests work.
func applyCORSMiddleware(r *gin.Engine, origins []string) {
	allowed := make(map[string]bool, len(origins))
	for _, origin := range origins {
		allowed[origin] = true
	}

	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if allowed[origin] {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PATCH, PUT, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID")
			c.Header("Vary", "Origin")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}

func registerHealthRoute(r *gin.Engine, appName string) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": appName,
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
