package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	movieDelivery "github.com/martinmanurung/moviebase/internal/domain/movies/delivery"
	movieRepository "github.com/martinmanurung/moviebase/internal/domain/movies/repository"
	movieUsecase "github.com/martinmanurung/moviebase/internal/domain/movies/usecase"
	reviewDelivery "github.com/martinmanurung/moviebase/internal/domain/reviews/delivery"
	reviewRepository "github.com/martinmanurung/moviebase/internal/domain/reviews/repository"
	reviewUsecase "github.com/martinmanurung/moviebase/internal/domain/reviews/usecase"
	"github.com/martinmanurung/moviebase/internal/domain/users/delivery"
	"github.com/martinmanurung/moviebase/internal/domain/users/repository"
	"github.com/martinmanurung/moviebase/internal/domain/users/usecase"
	watchlistDelivery "github.com/martinmanurung/moviebase/internal/domain/watchlist/delivery"
	watchlistRepository "github.com/martinmanurung/moviebase/internal/domain/watchlist/repository"
	watchlistUsecase "github.com/martinmanurung/moviebase/internal/domain/watchlist/usecase"
	"github.com/martinmanurung/moviebase/internal/platform/cache"
	"github.com/martinmanurung/moviebase/internal/platform/config"
	"github.com/martinmanurung/moviebase/internal/platform/database"
	"github.com/martinmanurung/moviebase/internal/platform/storage"
	"github.com/martinmanurung/moviebase/pkg/jwt"
	"github.com/martinmanurung/moviebase/pkg/middleware"
	customValidator "github.com/martinmanurung/moviebase/pkg/validator"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

func main() {
	// Setup zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	zlog.Info().Msg("Starting MovieBase API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := database.InitMySQL(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}
	defer sqlDB.Close()

	ctx := context.Background()

	// Initialize MinIO
	minioClient, err := storage.InitMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("Failed to initialize MinIO: %v", err)
	}
	zlog.Info().Msg("MinIO initialized successfully")

	// Initialize Redis client
	redisClient, err := cache.InitRedis(cfg.Redis)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()
	zlog.Info().Msg("Redis initialized successfully")

	// Initialize services
	storageService := storage.NewStorageService(minioClient, cfg.MinIO.BucketPosters)

	// Initialize Echo
	e := echo.New()
	e.Use(middleware.RequestID())
	e.HideBanner = false

	// Register validator
	e.Validator = customValidator.New()

	// Initialize JWT service
	tokenExpiry, err := time.ParseDuration(cfg.JWT.AccessTokenExpiry)
	if err != nil {
		log.Fatalf("Invalid jwt.access_token_expiry: %v", err)
	}
	jwtService := jwt.NewJWTService(cfg.JWT.SecretKey, tokenExpiry)

	// Initialize repositories
	userRepo := repository.NewUser(db)
	movieRepo := movieRepository.NewMovieRepository(db)
	reviewRepo := reviewRepository.NewReviewRepository(db)
	watchlistRepo := watchlistRepository.NewWatchlistRepository(db)

	// Initialize use cases
	userUsecase := usecase.NewUsecase(userRepo, jwtService)
	movieUsecaseInstance := movieUsecase.NewMovieUsecase(movieRepo, storageService)
	reviewUsecaseInstance := reviewUsecase.NewReviewUsecase(reviewRepo, movieRepo, userRepo)
	watchlistUsecaseInstance := watchlistUsecase.NewWatchlistUsecase(watchlistRepo, movieRepo)

	// Initialize handlers
	userHandler := delivery.NewHandler(ctx, userUsecase, reviewUsecaseInstance)
	movieHandler := movieDelivery.NewMovieHandler(ctx, movieUsecaseInstance, reviewUsecaseInstance)
	reviewHandler := reviewDelivery.NewReviewHandler(ctx, reviewUsecaseInstance)
	watchlistHandler := watchlistDelivery.NewWatchlistHandler(ctx, watchlistUsecaseInstance)

	// Setup routes
	setupRoutes(e, cfg, redisClient, userHandler, movieHandler, reviewHandler, watchlistHandler, jwtService)

	// Start server in goroutine
	go func() {
		port := cfg.Server.Port
		if port == "" {
			port = "8080"
		}

		zlog.Info().Str("port", port).Msg("Starting HTTP server")
		if err := e.Start(":" + port); err != nil {
			zlog.Info().Err(err).Msg("Server stopped")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	zlog.Info().Msg("Shutting down server...")

	// Gracefully shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	zlog.Info().Msg("Server exited successfully")
}
