package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/memorias-app/memorias/cmd/api/container"
	"github.com/memorias-app/memorias/cmd/api/handlers"
	apimiddleware "github.com/memorias-app/memorias/cmd/api/middleware"
	commonmiddleware "github.com/memorias-app/memorias/common/middleware"
)

// RegisterSuggestRoutes registers the typeahead suggestion proxy. The routes
// are session-guarded and, when Redis is available, rate limited: both
// upstream catalogs are free public APIs with usage policies.
func RegisterSuggestRoutes(e *echo.Echo, c *container.Container) {
	log := c.Components.Logger
	h := handlers.NewSuggestHandler(c.SuggestService, log)

	mw := []echo.MiddlewareFunc{apimiddleware.RequireSession(c.Sessions, log)}
	if c.Limiter != nil {
		cfg := c.Components.Config.RateLimit
		mw = append(mw, commonmiddleware.RateLimitMiddleware(c.Limiter, cfg.GlobalPerMin, cfg.PerUserPerMin))
	}

	suggest := e.Group("/api/v1/suggest", mw...)
	{
		suggest.GET("/music", h.Music)   // GET /api/v1/suggest/music?q=
		suggest.GET("/places", h.Places) // GET /api/v1/suggest/places?q=
	}
}
