package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prompt-insights/internal/api"
	"prompt-insights/internal/api/handlers"
	"prompt-insights/internal/executor"
	"prompt-insights/internal/llm"
	"prompt-insights/internal/repository"
	"prompt-insights/internal/schema"
	"prompt-insights/internal/service"
	"prompt-insights/internal/session"
	"prompt-insights/internal/sqlgen"
	"prompt-insights/internal/summary"
	"prompt-insights/pkg/auth"
	"prompt-insights/pkg/config"
	"prompt-insights/pkg/logger"
	"prompt-insights/pkg/mysql"
	"prompt-insights/pkg/postgres"

	"go.uber.org/zap"
)

// @title Prompt Insights API
// @version 1.0
// @description Natural language questions answered with read-only SQL over the analytics database
// @termsOfService http://swagger.io/terms/

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8000
// @BasePath /

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level, cfg.Logger.Format); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting Prompt Insights service")

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", zap.Error(err))
	}

	ctx := context.Background()

	// Analytics database and schema
	analyticsDB, err := mysql.Open(ctx, &cfg.Analytics, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to connect to analytics database", zap.Error(err))
	}
	defer analyticsDB.Close()

	queryExecutor := executor.New(analyticsDB, executor.Config{
		RowLimit: cfg.Query.RowLimit,
		ReadOnly: cfg.Query.ReadOnly,
	}, appLogger)

	schemaCache := schema.NewCache(analyticsDB, schema.Config{
		Database:      cfg.Analytics.DBName,
		CacheFile:     cfg.Schema.CacheFile,
		AllowedTables: cfg.Query.AllowedTables,
	}, appLogger)
	if _, err := schemaCache.LoadOrRefresh(ctx); err != nil {
		appLogger.Fatal("Failed to load database schema", zap.Error(err))
	}

	// Model client
	llmClient, err := llm.New(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize LLM client", zap.Error(err))
	}
	defer llmClient.Close()

	jwtManager := auth.NewJWTManager(cfg.Admin.JWTSecret, cfg.Admin.TokenTTL)

	// Feedback store
	var (
		trainingContext service.TrainingContext
		feedbackHandler *handlers.FeedbackHandler
		adminHandler    *handlers.AdminHandler
	)
	if cfg.Database.Enabled {
		db, err := postgres.NewPool(ctx, &cfg.Database, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to connect to feedback store", zap.Error(err))
		}
		defer db.Close()

		if err := postgres.Migrate(ctx, db, appLogger); err != nil {
			appLogger.Fatal("Failed to migrate feedback store", zap.Error(err))
		}

		feedbackRepo := repository.NewFeedbackRepository(db, appLogger)
		trainingRepo := repository.NewTrainingRepository(db, appLogger)
		trainingContext = trainingRepo

		feedbackService := service.NewFeedbackService(feedbackRepo, trainingRepo, appLogger)
		adminService := service.NewAdminService(cfg.Admin.PasswordHash, jwtManager, appLogger)
		if cfg.Admin.PasswordHash == "" {
			appLogger.Warn("ADMIN_PASSWORD_HASH is not set, admin login is disabled")
		}

		feedbackHandler = handlers.NewFeedbackHandler(feedbackService, appLogger)
		adminHandler = handlers.NewAdminHandler(adminService, feedbackService, appLogger)
	}

	// Initialize services
	assistant := service.NewAssistant(
		schemaCache,
		queryExecutor,
		trainingContext,
		sqlgen.NewGenerator(llmClient, appLogger),
		summary.NewSummarizer(llmClient, appLogger),
		appLogger,
	)
	sessions := session.NewMemoryStore()
	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	sessions.StartSweeper(sweepCtx, time.Minute, cfg.Server.SessionIdleTTL, appLogger)
	chatService := service.NewChatService(assistant, sessions, appLogger)
	reportService := service.NewReportService(assistant, cfg.Reports.Dir, appLogger)

	// Setup router
	app := api.SetupRouter(api.Handlers{
		Chat:     handlers.NewChatHandler(chatService, appLogger),
		Schema:   handlers.NewSchemaHandler(schemaCache, queryExecutor, appLogger),
		Report:   handlers.NewReportHandler(reportService, appLogger),
		Feedback: feedbackHandler,
		Admin:    adminHandler,
	}, &cfg.Server, jwtManager, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.Shutdown(); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
