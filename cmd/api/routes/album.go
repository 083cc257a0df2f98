package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/memorias-app/memorias/cmd/api/container"
	"github.com/memorias-app/memorias/cmd/api/handlers"
	apimiddleware "github.com/memorias-app/memorias/cmd/api/middleware"
)

// RegisterAlbumRoutes registers album and media routes. Everything is behind
// the session guard: albums are private to their owner.
func RegisterAlbumRoutes(e *echo.Echo, c *container.Container) {
	log := c.Components.Logger
	albumHandler := handlers.NewAlbumHandler(c.AlbumService, log)
	mediaHandler := handlers.NewMediaHandler(c.MediaService, log)

	albums := e.Group("/api/v1/albums", apimiddleware.RequireSession(c.Sessions, log))
	{
		albums.GET("", albumHandler.List)             // GET /api/v1/albums
		albums.POST("", albumHandler.Create)          // POST /api/v1/albums
		albums.GET("/gallery", albumHandler.Gallery)  // GET /api/v1/albums/gallery
		albums.GET("/:albumId", albumHandler.Detail)  // GET /api/v1/albums/{album_id}
		albums.PUT("/:albumId", albumHandler.Save)    // PUT /api/v1/albums/{album_id}

		albums.POST("/:albumId/media/images", mediaHandler.AddImages) // multipart "images"
		albums.POST("/:albumId/media/text", mediaHandler.AddText)
		albums.POST("/:albumId/media/songs", mediaHandler.AddSong)
		albums.DELETE("/:albumId/media/:mediaId", mediaHandler.Remove)
	}
}
