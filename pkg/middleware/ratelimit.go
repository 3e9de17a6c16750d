package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/martinmanurung/moviebase/pkg/response"
	"github.com/redis/go-redis/v9"
)

// RateLimit returns a per-IP fixed-window rate limiter backed by Redis.
// Fails open when Redis is unavailable so the API keeps serving traffic.
func RateLimit(client *redis.Client, limit int, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			logger := GetLogger(c)
			ctx := c.Request().Context()

			key := fmt.Sprintf("ratelimit:%s:%d", c.RealIP(), time.Now().Unix()/int64(window.Seconds()))

			count, err := client.Incr(ctx, key).Result()
			if err != nil {
				logger.Warn().Err(err).Msg("Rate limiter unavailable, allowing request")
				return next(c)
			}

			if count == 1 {
				if err := client.Expire(ctx, key, window).Err(); err != nil {
					logger.Warn().Err(err).Msg("Failed to set rate limit window expiry")
				}
			}

			if count > int64(limit) {
				return response.Error(c, http.StatusTooManyRequests, "rate_limited", "too many requests, slow down")
			}

			return next(c)
		}
	}
}
