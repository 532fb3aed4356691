package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/velora/identity-api/internal/api/metrics"
)

// LoginRateLimit caps login attempts per client IP using a fixed window
// counter in Redis. Key format: ratelimit:login:<ip>
//
// Redis being unreachable fails open: logins still require valid
// credentials, so availability wins over throttling here.
func LoginRateLimit(rdb *redis.Client, limit int, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("ratelimit:login:%s", c.RealIP())

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				log.Warn().Err(err).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if n == 1 {
				if err := rdb.Expire(ctx, key, window).Err(); err != nil {
					log.Warn().Err(err).Str("key", key).Msg("rate limit expire failed")
				}
			}
			if n > int64(limit) {
				metrics.LoginThrottledTotal.Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many login attempts")
			}

			return next(c)
		}
	}
}
