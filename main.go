package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/vladimiradmaev/vaidya-health/internal/bot"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/handlers"
	"github.com/vladimiradmaev/vaidya-health/internal/bot/state"
	"github.com/vladimiradmaev/vaidya-health/internal/config"
	"github.com/vladimiradmaev/vaidya-health/internal/database"
	"github.com/vladimiradmaev/vaidya-health/internal/logger"
	"github.com/vladimiradmaev/vaidya-health/internal/repository"
	"github.com/vladimiradmaev/vaidya-health/internal/services"
	"github.com/vladimiradmaev/vaidya-health/internal/storage"
)

func main() {
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", "error", err)
	}

	if err := logger.InitWithConfig(logger.Config{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
		MaxSizeMB:  cfg.Logger.MaxSizeMB,
		MaxBackups: cfg.Logger.MaxBackups,
		MaxAgeDays: cfg.Logger.MaxAgeDays,
	}); err != nil {
		logger.Fatal("Failed to initialize logger", "error", err)
	}
	defer logger.Close()

	if envErr != nil {
		logger.Warn(".env file not found, using environment only")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", "error", err)
	}
	logger.Info("Starting VAIDYA health bot", "ai_provider", cfg.AI.Provider, "db_driver", cfg.DB.Driver)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DB)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}

	generator, err := services.NewGenerator(ctx, cfg.AI)
	if err != nil {
		logger.Fatal("Failed to create AI client", "error", err)
	}
	if closer, ok := generator.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	var objectStorage storage.ObjectStorage
	if cfg.Storage.Enabled() {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.Storage)
		if err != nil {
			logger.Fatal("Failed to create object storage", "error", err)
		}
		objectStorage = s3Storage
		logger.Info("File uploads enabled", "bucket", cfg.Storage.Bucket)
	} else {
		logger.Warn("S3_BUCKET not set, file uploads are disabled")
	}

	var stateManager state.StateManager
	if cfg.Redis.Enabled() {
		redisManager, err := state.NewRedisManager(cfg.Redis.Host, cfg.Redis.Port)
		if err != nil {
			logger.Fatal("Failed to connect to Redis", "error", err)
		}
		defer redisManager.Close()
		stateManager = redisManager
		logger.Info("Using Redis for session state")
	} else {
		stateManager = state.NewManager()
		logger.Info("Using in-memory session state")
	}

	// Initialize services
	aiService := services.NewAIService(generator)
	reportRepo := repository.NewReportRepository(db)
	deps := handlers.Dependencies{
		UserService:  services.NewUserService(repository.NewUserRepository(db)),
		ReportSvc:    services.NewReportService(reportRepo, aiService, objectStorage),
		StatsSvc:     services.NewStatsService(reportRepo),
		ChatSvc:      services.NewChatService(repository.NewChatRepository(db), aiService),
		TaskSvc:      services.NewTaskService(repository.NewTaskRepository(db)),
		HealthLogSvc: services.NewHealthLogService(repository.NewHealthLogRepository(db)),
	}

	telegramBot, err := bot.NewBot(cfg.TelegramToken, deps, stateManager)
	if err != nil {
		logger.Fatal("Failed to create bot", "error", err)
	}

	logger.Info("Bot is running. Press Ctrl+C to stop.")
	if err := telegramBot.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Bot stopped with error", "error", err)
	}
}
