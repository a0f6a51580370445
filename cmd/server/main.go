package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yamboly/tutor-dashboard-service/internal/analytics"
	"github.com/yamboly/tutor-dashboard-service/internal/cache"
	"github.com/yamboly/tutor-dashboard-service/internal/config"
	"github.com/yamboly/tutor-dashboard-service/internal/events"
	"github.com/yamboly/tutor-dashboard-service/internal/handlers"
	"github.com/yamboly/tutor-dashboard-service/internal/repositories/postgres"
	"github.com/yamboly/tutor-dashboard-service/internal/services"
	"github.com/yamboly/tutor-dashboard-service/internal/tutor"
	"github.com/yamboly/tutor-dashboard-service/internal/utils"
	"github.com/yamboly/tutor-dashboard-service/pkg"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slogLogger := newSlogLogger(cfg)
	logger := utils.NewSlogLogger(slogLogger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()

	cacheService := cache.NewRedisCache(redisClient, logger)
	repo := postgres.NewRepository(db)
	validator := utils.NewValidator()
	engine := analytics.NewEngine()
	tutorClient := tutor.NewClient(cfg.TutorWebhookURL, logger)

	publisher, err := cfg.Events.CreateEventPublisher(slogLogger)
	if err != nil {
		logger.Warn("event publisher unavailable, falling back to mock", "error", err)
		publisher = events.NewMockEventPublisher(slogLogger)
	}
	defer publisher.Close()

	reportService := services.NewReportService(repo, engine, publisher, slogLogger)
	statisticsService := services.NewStatisticsService(repo, engine, slogLogger)
	chatService := services.NewChatService(repo, cacheService, tutorClient, publisher, slogLogger, validator)
	exerciseService := services.NewExerciseService(repo, tutorClient, chatService, publisher, slogLogger, validator)
	studentService := services.NewStudentService(repo, cacheService, publisher, slogLogger, validator)

	verifier := handlers.NewCasdoorVerifier(cfg)

	handlerManager := handlers.NewHandlerManager(
		reportService,
		statisticsService,
		chatService,
		exerciseService,
		studentService,
		verifier,
		logger,
	)

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(logger))
	router.Use(handlers.CORSMiddleware(cfg.AllowedOrigins))

	handlerManager.SetupRoutes(router)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("forced shutdown", "error", err)
	}
	logger.Info("server stopped")
}

func newSlogLogger(cfg *config.Config) *slog.Logger {
	if cfg.IsDevelopment() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
