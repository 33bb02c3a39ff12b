package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pet-ai.backend/internal/config"
	"pet-ai.backend/internal/infrastructure/email"
	"pet-ai.backend/internal/infrastructure/llm"
	"pet-ai.backend/internal/infrastructure/repositories"
	"pet-ai.backend/internal/interfaces/http/handlers"
	"pet-ai.backend/internal/interfaces/http/middleware"
	"pet-ai.backend/internal/usecases"
	"pet-ai.backend/pkg/jwt"
	"pet-ai.backend/pkg/logger"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	// Load .env file
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database using GORM
	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.Database.DebugSQL {
		db = db.Debug()
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("⚠️ Database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("✅ Connected to PostgreSQL via GORM")
	}

	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	codeRepo := repositories.NewVerificationCodeRepository(db)
	chatRepo := repositories.NewChatRepository(db)
	messageRepo := repositories.NewMessageRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Initialize outbound adapters
	sender := email.NewSMTPSender(cfg.SMTP, cfg.App.Name)
	referer := ""
	if len(cfg.App.CORSOrigins) > 0 {
		referer = cfg.App.CORSOrigins[0]
	}
	completionClient := llm.NewOpenRouterClient(cfg.OpenRouter, cfg.App.Name, referer)

	// Initialize usecases
	verification := usecases.NewVerificationService(codeRepo, sender, uow)
	authUsecase := usecases.NewAuthUsecase(userRepo, verification, jwtService, cfg.SMTP.Configured())
	profileUsecase := usecases.NewProfileUsecase(userRepo, verification)
	chatUsecase := usecases.NewChatUsecase(chatRepo, messageRepo, cfg.OpenRouter.Model)
	conversationUsecase := usecases.NewConversationUsecase(chatRepo, messageRepo, uow, completionClient, cfg.OpenRouter)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authUsecase)
	profileHandler := handlers.NewProfileHandler(profileUsecase)
	chatHandler := handlers.NewChatHandler(chatUsecase, conversationUsecase)

	// Initialize router
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r, cfg.App.CORSOrigins)
	registerHealthRoute(r, cfg.App.Name)
	registerMetricsRoute(r)
	registerRoutes(r, routeDeps{
		authHandler:    authHandler,
		profileHandler: profileHandler,
		chatHandler:    chatHandler,
		authMiddleware: middleware.AuthMiddleware(jwtService, userRepo),
	})

	log.Printf("🚀 Server starting on port %s", cfg.Server.Port)
	return runServer(r, cfg.Server.Port)
}
