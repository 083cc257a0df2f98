package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/memorias-app/memorias/common/clients"
	"github.com/memorias-app/memorias/common/logger"
)

// RequireSession rejects requests without a valid bearer session. On success
// the user id is stored both on the echo context ("user_id") and on the
// request context, so downstream services and the rate limiter see the same
// identity.
func RequireSession(sessions clients.SessionProvider, log *logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c.Request())
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{
					"error": "authentication required",
				})
			}

			session, err := sessions.Current(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, clients.ErrNoSession) {
					return c.JSON(http.StatusUnauthorized, map[string]string{
						"error": "authentication required",
					})
				}
				log.Error("session lookup failed", "error", err)
				return c.JSON(http.StatusBadGateway, map[string]string{
					"error": "session service unavailable",
				})
			}

			c.Set("user_id", session.UserID)
			ctx := clients.WithUserID(c.Request().Context(), session.UserID)
			c.SetRequest(c.Request().WithContext(ctx))

			return next(c)
		}
	}
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
