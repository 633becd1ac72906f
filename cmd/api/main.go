package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"

	"github.com/quraniq/quraniq-api/internal/config"
	"github.com/quraniq/quraniq-api/internal/database"
	"github.com/quraniq/quraniq-api/internal/events"
	"github.com/quraniq/quraniq-api/internal/handler"
	"github.com/quraniq/quraniq-api/internal/middleware"
	"github.com/quraniq/quraniq-api/internal/models"
	"github.com/quraniq/quraniq-api/internal/quran"
	"github.com/quraniq/quraniq-api/internal/repository"
	"github.com/quraniq/quraniq-api/internal/reveal"
	"github.com/quraniq/quraniq-api/internal/router"
	"github.com/quraniq/quraniq-api/internal/service"
	"github.com/quraniq/quraniq-api/pkg/ai"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", cfg.AppName).Logger()

	db, err := database.ConnectPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.User{}, &models.Inquiry{}); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	redisClient, err := database.ConnectRedis(cfg.RedisURL)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()

	var natsConn *nats.Conn
	if cfg.NATSURL != "" {
		natsConn, err = nats.Connect(cfg.NATSURL, nats.Name(cfg.AppName))
		if err != nil {
			logger.Warn().Err(err).Msg("nats unavailable, lifecycle events disabled")
		} else {
			defer natsConn.Drain()
		}
	}
	publisher := events.NewPublisher(natsConn, logger)

	generator, err := ai.NewOpenAIGenerator(ai.OpenAIConfig{
		APIKey:    cfg.OpenAIAPIKey,
		Model:     cfg.OpenAIModel,
		MaxTokens: cfg.AnswerMaxTokens,
		Logger:    logger,
	})
	if err != nil {
		log.Fatalf("failed to create answer generator: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())

	userRepo := repository.NewUserRepository(db)
	inquiryRepo := repository.NewInquiryRepository(db)

	authService := service.NewAuthService(userRepo, validate, logger, service.AuthConfig{
		JWTSecret: cfg.JWTSecret,
		JWTExpiry: cfg.JWTExpiry,
	})
	answerService := service.NewAnswerService(quran.NewRetriever(nil), generator, validate, logger, service.AnswerConfig{
		MaxTokens:       cfg.AnswerMaxTokens,
		UpstreamTimeout: cfg.UpstreamTimeout,
	})
	inquiryService := service.NewInquiryService(inquiryRepo, redisClient, cfg.InquiryCacheTTL, validate, logger)
	journeyService := service.NewJourneyService(userRepo, validate, logger)
	revealService := service.NewRevealService(answerService, inquiryRepo, redisClient, publisher, logger, reveal.Options{
		MinDelay: cfg.RevealMinDelay,
		MaxDelay: cfg.RevealMaxDelay,
	})

	authHandler := handler.NewAuthHandler(authService, logger)
	chatHandler := handler.NewChatHandler(answerService, revealService, logger)
	inquiryHandler := handler.NewInquiryHandler(inquiryService, logger)
	journeyHandler := handler.NewJourneyHandler(journeyService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{Logger: &logger})
	router.Register(app, cfg, router.Dependencies{
		AuthHandler:    authHandler,
		ChatHandler:    chatHandler,
		InquiryHandler: inquiryHandler,
		JourneyHandler: journeyHandler,
		JWTMiddleware:  middleware.JWTProtected(cfg.JWTSecret),
		RateLimiter:    middleware.RateLimit("chat", cfg.ChatRateLimit, cfg.ChatRateWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	waitForShutdown(app, logger)
}

func waitForShutdown(app *fiber.App, logger zerolog.Logger) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	}

	logger.Info().Msg("server stopped")
}
