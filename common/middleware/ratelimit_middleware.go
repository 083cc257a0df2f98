package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/memorias-app/memorias/common/ratelimit"
)

// RateLimitMiddleware throttles a route group globally and per user. The
// per-user check runs only when an authenticated user is in context. Limiter
// errors fail open so a Redis outage never takes the endpoints down.
func RateLimitMiddleware(limiter *ratelimit.Limiter, globalLimit, userLimit int64) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()

			result, err := limiter.CheckGlobal(ctx, globalLimit)
			if err == nil && !result.Allowed {
				return tooManyRequests(c, "global_rate_limit_exceeded", result)
			}

			userID, ok := c.Get("user_id").(string)
			if !ok || userID == "" {
				return next(c)
			}

			result, err = limiter.CheckUser(ctx, userID, userLimit)
			if err == nil && !result.Allowed {
				return tooManyRequests(c, "user_rate_limit_exceeded", result)
			}

			return next(c)
		}
	}
}

func tooManyRequests(c echo.Context, code string, result *ratelimit.Result) error {
	return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
		"error": code,
		"details": map[string]interface{}{
			"limit":               result.Limit,
			"window":              "60 seconds",
			"retry_after_seconds": result.RetryAfterSeconds,
		},
	})
}
