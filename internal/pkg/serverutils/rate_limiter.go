package serverutils

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// RateLimiter caps requests per client IP using a fixed window counter in
// Redis. When rdb is nil the middleware is a no-op so local development
// without Redis keeps working.
func RateLimiter(rdb *redis.Client, maxRequests int, window time.Duration) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if rdb == nil {
			return ctx.Next()
		}

		key := fmt.Sprintf("ratelimit:%s:%s", ctx.Path(), ctx.IP())

		count, err := rdb.Incr(context.Background(), key).Result()
		if err != nil {
			// Redis being down should not take the API down with it.
			return ctx.Next()
		}
		if count == 1 {
			rdb.Expire(context.Background(), key, window)
		}

		if count > int64(maxRequests) {
			return ctx.Status(fiber.StatusTooManyRequests).JSON(ErrorBody("Too many requests, please slow down", nil))
		}

		return ctx.Next()
	}
}
