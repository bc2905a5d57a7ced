package container

import (
	"context"
	"fmt"

	"github.com/fredluz/Cupido/internal/config"
	"github.com/fredluz/Cupido/internal/delivery/http"
	"github.com/fredluz/Cupido/internal/delivery/http/handler"
	"github.com/fredluz/Cupido/internal/delivery/http/middleware"
	"github.com/fredluz/Cupido/internal/infrastructure/database"
	"github.com/fredluz/Cupido/internal/infrastructure/gemini"
	"github.com/fredluz/Cupido/internal/infrastructure/server"
	"github.com/fredluz/Cupido/internal/pkg/logger"
	"github.com/fredluz/Cupido/internal/repository/postgres"
	"github.com/fredluz/Cupido/internal/usecase/admin"
	"github.com/fredluz/Cupido/internal/usecase/chat"
	"github.com/fredluz/Cupido/internal/usecase/group"
	"github.com/fredluz/Cupido/internal/usecase/match"
	"github.com/fredluz/Cupido/internal/usecase/quiz"
	"github.com/fredluz/Cupido/internal/usecase/reveal"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Log    *logger.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.GeminiClient
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, log *logger.Logger) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.Migrate(context.Background(), db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Redis backs the match cache and the reveal broadcast. Both degrade
	// gracefully, so a missing redis only costs performance.
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		log.Warn("redis unavailable, match cache and reveal push disabled", "error", err)
		redisClient = nil
	}

	// Icebreakers are optional in the same way.
	var icebreakers chat.IcebreakerGenerator
	geminiClient, err := gemini.NewGeminiClient(cfg.Gemini.APIKey)
	if err != nil {
		log.Warn("gemini unavailable, icebreakers disabled", "error", err)
	} else {
		icebreakers = geminiClient
	}

	// Initialize repositories
	profileRepo := postgres.NewProfileRepository(db)
	edgeRepo := postgres.NewMatchEdgeRepository(db)
	threadRepo := postgres.NewThreadRepository(db)
	messageRepo := postgres.NewMessageRepository(db)
	groupRepo := postgres.NewGroupRepository(db)
	settingsRepo := postgres.NewSettingsRepository(db)

	// Initialize use cases
	revealUseCase := reveal.NewUseCase(settingsRepo, threadRepo, redisClient, log)
	matchUseCase := match.NewUseCase(profileRepo, edgeRepo, redisClient, log)
	groupUseCase := group.NewUseCase(groupRepo, profileRepo, messageRepo, revealUseCase, log)
	chatUseCase := chat.NewUseCase(threadRepo, messageRepo, edgeRepo, profileRepo, revealUseCase, icebreakers, log)
	quizUseCase := quiz.NewUseCase(profileRepo, matchUseCase, groupUseCase, log)
	adminUseCase := admin.NewUseCase(cfg.Admin.PasswordHash, cfg.Admin.JWTSecret, cfg.Admin.TokenTTL(), log)

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(quizUseCase, log)
	profileHandler := handler.NewProfileHandler(quizUseCase, log)
	matchHandler := handler.NewMatchHandler(matchUseCase, log)
	chatHandler := handler.NewChatHandler(chatUseCase, log)
	groupHandler := handler.NewGroupHandler(groupUseCase, log)
	revealHandler := handler.NewRevealHandler(revealUseCase, log)
	adminHandler := handler.NewAdminHandler(adminUseCase, revealUseCase, log)

	// Initialize router
	router := http.NewRouter(
		quizHandler,
		profileHandler,
		matchHandler,
		chatHandler,
		groupHandler,
		revealHandler,
		adminHandler,
		middleware.OperatorAuth(adminUseCase),
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter)

	return &Container{
		Config: cfg,
		Log:    log,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
		Gemini: geminiClient,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Gemini != nil {
		c.Gemini.Close()
	}

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Log.Error("failed to close redis", "error", err)
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
