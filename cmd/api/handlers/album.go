package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/memorias-app/memorias/cmd/api/models"
	"github.com/memorias-app/memorias/common/logger"
)

// Albums is the album operations surface the handler needs. Implemented by
// service.AlbumService.
type Albums interface {
	List(ctx context.Context, userID string) ([]*models.Album, error)
	Detail(ctx context.Context, userID string, albumID uuid.UUID) (*models.AlbumDetail, error)
	Create(ctx context.Context, userID string, fields models.AlbumFields) (*models.Album, error)
	Save(ctx context.Context, userID string, albumID uuid.UUID, fields models.AlbumFields) (*models.Album, error)
	Gallery(ctx context.Context, userID string) ([]*models.AlbumDetail, error)
}

// AlbumHandler handles album CRUD requests
type AlbumHandler struct {
	albums Albums
	log    *logger.Logger
}

// NewAlbumHandler creates a new album handler
func NewAlbumHandler(albums Albums, log *logger.Logger) *AlbumHandler {
	return &AlbumHandler{albums: albums, log: log}
}

// List returns the user's albums without media
func (h *AlbumHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	albums, err := h.albums.List(c.Request().Context(), userID)
	if err != nil {
		h.log.Error("failed to list albums", "error", err, "user_id", userID)
		return writeError(c, err)
	}
	if albums == nil {
		albums = []*models.Album{}
	}

	return c.JSON(http.StatusOK, albums)
}

// Gallery returns all of the user's albums, each with its media
func (h *AlbumHandler) Gallery(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	details, err := h.albums.Gallery(c.Request().Context(), userID)
	if err != nil {
		h.log.Error("failed to load gallery", "error", err, "user_id", userID)
		return writeError(c, err)
	}
	if details == nil {
		details = []*models.AlbumDetail{}
	}

	return c.JSON(http.StatusOK, details)
}

// Detail returns one album with its media
func (h *AlbumHandler) Detail(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	albumID, err := parseAlbumID(c)
	if err != nil {
		return writeError(c, err)
	}

	detail, err := h.albums.Detail(c.Request().Context(), userID, albumID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, detail)
}

// Create upserts an album from its mutable fields
func (h *AlbumHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	var fields models.AlbumFields
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	album, err := h.albums.Create(c.Request().Context(), userID, fields)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, album)
}

// Save replaces an album's mutable fields
func (h *AlbumHandler) Save(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	albumID, err := parseAlbumID(c)
	if err != nil {
		return writeError(c, err)
	}

	var fields models.AlbumFields
	if err := c.Bind(&fields); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	album, err := h.albums.Save(c.Request().Context(), userID, albumID, fields)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, album)
}
