package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fitcoach/trainer-service/internal/analytics"
	"github.com/fitcoach/trainer-service/internal/cache"
	"github.com/fitcoach/trainer-service/internal/charts"
	"github.com/fitcoach/trainer-service/internal/config"
	"github.com/fitcoach/trainer-service/internal/events"
	"github.com/fitcoach/trainer-service/internal/handlers"
	"github.com/fitcoach/trainer-service/internal/models"
	"github.com/fitcoach/trainer-service/internal/repositories/postgres"
	"github.com/fitcoach/trainer-service/internal/services"
	"github.com/fitcoach/trainer-service/internal/utils"
	"github.com/fitcoach/trainer-service/internal/validator"
	"github.com/fitcoach/trainer-service/pkg"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	var appLogger utils.Logger
	if cfg.Environment == "production" {
		appLogger = utils.NewDefaultLogger()
	} else {
		appLogger = utils.NewDevelopmentLogger()
	}
	logger := utils.ToSlogLogger(appLogger)

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Student{},
		&models.PhysicalAssessment{},
		&models.AssessmentHistoryRecord{},
	); err != nil {
		logger.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	var cacheService cache.CacheService
	redisClient, err := pkg.NewRedisClient(cfg)
	if err != nil {
		logger.Warn("Redis unavailable, analysis caching disabled", "error", err)
	} else {
		cacheService = cache.NewRedisCache(redisClient, logger)
		defer redisClient.Close()
	}

	var publisher events.EventPublisher
	kafkaPublisher, err := events.NewKafkaEventPublisher(events.PublisherConfig{
		KafkaBrokers: cfg.KafkaBrokers,
		TopicName:    cfg.KafkaTopic,
		Logger:       logger,
	})
	if err != nil {
		logger.Warn("Kafka unavailable, falling back to mock publisher", "error", err)
		publisher = events.NewMockEventPublisher(logger)
	} else {
		publisher = kafkaPublisher
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Error("Failed to close event publisher", "error", err)
		}
	}()

	repo := postgres.NewRepository(db)
	v := validator.New()
	engine := analytics.NewEngine(charts.NewEChartsRenderer(), logger)

	serviceManager := services.NewServiceManager(
		repo,
		engine,
		cacheService,
		cfg.AnalysisCacheTTL,
		publisher,
		logger,
		v,
	)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.LoggerMiddleware(appLogger))

	handlerManager := handlers.NewHandlerManager(serviceManager, appLogger)
	handlerManager.SetupRoutes(router)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Forced shutdown", "error", err)
	}
}
