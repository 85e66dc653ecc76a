package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/healthlens/backend/internal/analysis"
	"github.com/healthlens/backend/internal/config"
	"github.com/healthlens/backend/internal/gemini"
	"github.com/healthlens/backend/internal/handler"
	"github.com/healthlens/backend/internal/middleware"
	"github.com/healthlens/backend/internal/repository"
	"github.com/healthlens/backend/pkg/model"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize Zap logger
	var logger *zap.Logger
	if cfg.Server.Environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	logger.Info("Configuration loaded successfully",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.String("storage_backend", cfg.Storage.Backend),
	)

	// Initialize the record store backend
	store, cleanup, err := newRecordStore(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to initialize record store", zap.Error(err))
	}
	defer cleanup()

	// Initialize Gemini client
	aiClient, err := gemini.NewClient(
		cfg.Gemini.Endpoint,
		cfg.Gemini.APIKey,
		cfg.Gemini.RequestTimeout,
		logger,
	)
	if err != nil {
		logger.Fatal("Failed to initialize Gemini client", zap.Error(err))
	}

	// Initialize services
	analysisService := analysis.NewService(aiClient, store, logger)
	summaryService := analysis.NewSummaryService(store, logger)

	// Initialize handlers
	analyzeHandler := handler.NewAnalyzeHandler(analysisService, logger)
	chatHandler := handler.NewChatHandler(analysisService, logger)
	summaryHandler := handler.NewSummaryHandler(summaryService, logger)
	uploadHandler := handler.NewUploadHandler(cfg.Upload.MaxFileSize, logger)

	// Set Gin mode
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	r := gin.New()

	// Add recovery middleware (must be first)
	r.Use(middleware.RecoveryMiddleware(logger))

	// Add CORS middleware
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Configure appropriately for production
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Add request ID middleware
	r.Use(middleware.RequestIDMiddleware())

	// Add request logging middleware
	r.Use(middleware.RequestLoggingMiddleware(logger))

	// Add error logging middleware
	r.Use(middleware.ErrorLoggingMiddleware(logger))

	// Register routes; analyze and chat categories are fixed per endpoint
	api := r.Group("/api/v1")
	for _, category := range model.Categories() {
		api.POST("/analyze/"+string(category), analyzeHandler.Handle(category))
		api.POST("/chat/"+string(category), chatHandler.Handle(category))
	}
	api.GET("/health-summary", summaryHandler.Get)
	api.POST("/upload", uploadHandler.Post)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "healthlens-backend",
			"version": "1.0.0",
		})
	})

	// Start server with graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

// newRecordStore builds the configured record store backend and returns a
// cleanup function for any held resources.
func newRecordStore(cfg *config.Config, logger *zap.Logger) (repository.RecordStore, func(), error) {
	noop := func() {}

	switch cfg.Storage.Backend {
	case config.BackendJSONBlob:
		store, err := repository.NewJSONBlobStore(
			cfg.Storage.JSONBlob.BaseURL,
			cfg.Storage.JSONBlob.BlobID,
			cfg.Storage.JSONBlob.RequestTimeout,
			logger,
		)
		return store, noop, err

	case config.BackendAzure:
		store, err := repository.NewAzureBlobStore(
			cfg.Storage.Azure.AccountName,
			cfg.Storage.Azure.AccountKey,
			cfg.Storage.Azure.Container,
			cfg.Storage.Azure.BlobName,
			logger,
		)
		return store, noop, err

	case config.BackendPostgres:
		pool, err := pgxpool.New(context.Background(), cfg.Storage.Postgres.URL)
		if err != nil {
			return nil, noop, err
		}
		if err := pool.Ping(context.Background()); err != nil {
			pool.Close()
			return nil, noop, err
		}
		store := repository.NewPostgresStore(pool, logger)
		if err := store.EnsureSchema(context.Background()); err != nil {
			pool.Close()
			return nil, noop, err
		}
		logger.Info("Successfully connected to database")
		return store, pool.Close, nil
	}

	// Config validation rejects unknown backends before this point
	return nil, noop, nil
}
