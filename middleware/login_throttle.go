package middleware

import (
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// LoginThrottle caps login attempts per client IP in a fixed window shared
// through Redis, so the limit holds across instances. With a nil client it
// passes everything through and the in-process limiter is all that applies.
func LoginThrottle(rdb *redis.Client, maxAttempts int64, window time.Duration) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if rdb == nil {
			return next
		}
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			now := time.Now()
			slot := now.Truncate(window)
			key := fmt.Sprintf("login:%s:%d", c.RealIP(), slot.Unix())

			pipe := rdb.TxPipeline()
			incr := pipe.Incr(ctx, key)
			pipe.Expire(ctx, key, window)
			if _, err := pipe.Exec(ctx); err != nil {
				zerolog.Ctx(ctx).Warn().Err(err).Msg("login throttle unavailable")
				return next(c)
			}

			if incr.Val() > maxAttempts {
				zerolog.Ctx(ctx).Warn().Str("ip", c.RealIP()).Int64("attempts", incr.Val()).Msg("login throttled")
				return tooManyRequests(c, slot.Add(window))
			}
			return next(c)
		}
	}
}
