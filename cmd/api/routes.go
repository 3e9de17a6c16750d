package main

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	movieDelivery "github.com/martinmanurung/moviebase/internal/domain/movies/delivery"
	reviewDelivery "github.com/martinmanurung/moviebase/internal/domain/reviews/delivery"
	userDelivery "github.com/martinmanurung/moviebase/internal/domain/users/delivery"
	watchlistDelivery "github.com/martinmanurung/moviebase/internal/domain/watchlist/delivery"
	"github.com/martinmanurung/moviebase/internal/platform/config"
	"github.com/martinmanurung/moviebase/pkg/jwt"
	appMiddleware "github.com/martinmanurung/moviebase/pkg/middleware"
	"github.com/martinmanurung/moviebase/pkg/response"
	"github.com/redis/go-redis/v9"
)

func setupRoutes(e *echo.Echo, cfg *config.Config, redisClient *redis.Client, userHandler *userDelivery.Handler, movieHandler *movieDelivery.MovieHandler, reviewHandler *reviewDelivery.ReviewHandler, watchlistHandler *watchlistDelivery.WatchlistHandler, jwtService *jwt.JWTService) {
	// Middleware
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Gzip())
	e.Use(middleware.CORS())
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	if cfg.RateLimit.Enabled {
		window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
		e.Use(appMiddleware.RateLimit(redisClient, cfg.RateLimit.Requests, window))
	}

	// Custom error handler
	e.HTTPErrorHandler = response.CustomErrorHandler

	// Health check
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{
			"status": "ok",
		})
	})

	// API v1 routes
	v1 := e.Group("/api/v1")

	// User routes
	users := v1.Group("/users")
	{
		users.POST("/register", userHandler.RegisterUser)
		users.POST("/login", userHandler.LoginUser)
		users.POST("/logout", userHandler.Logout)
		users.POST("/refresh", userHandler.RefreshToken)

		// Protected routes (require JWT)
		users.GET("/me", userHandler.GetMe, jwtService.JWTMiddleware())
		users.GET("/:id", userHandler.GetUserProfile, jwtService.JWTMiddleware())
		users.PUT("/:id", userHandler.UpdateProfile, jwtService.JWTMiddleware())

		// Watchlist (self only, enforced in usecase)
		users.POST("/:id/watchlist", watchlistHandler.AddToWatchlist, jwtService.JWTMiddleware())
		users.GET("/:id/watchlist", watchlistHandler.GetWatchlist, jwtService.JWTMiddleware())
		users.DELETE("/:id/watchlist/:movieId", watchlistHandler.RemoveFromWatchlist, jwtService.JWTMiddleware())
	}

	// Movie routes (Public)
	movies := v1.Group("/movies")
	{
		movies.GET("", movieHandler.GetMovieList)       // GET /api/v1/movies?page=1&limit=10&genre=action&sortBy=averageRating
		movies.GET("/:id", movieHandler.GetMovieDetail) // GET /api/v1/movies/:id

		// Review routes
		movies.GET("/:id/reviews", reviewHandler.GetMovieReviews)                           // GET /api/v1/movies/:id/reviews
		movies.POST("/:id/reviews", reviewHandler.CreateReview, jwtService.JWTMiddleware()) // POST /api/v1/movies/:id/reviews
	}

	// Admin routes (Protected with JWT + AdminOnly middleware)
	admin := v1.Group("/admin")
	admin.Use(jwtService.JWTMiddleware(), appMiddleware.AdminOnly())
	{
		// Admin movie management
		adminMovies := admin.Group("/movies")
		{
			adminMovies.POST("", movieHandler.CreateMovie)         // POST /api/v1/admin/movies
			adminMovies.POST("/poster", movieHandler.UploadPoster) // POST /api/v1/admin/movies/poster
		}
	}
}
