package handlers

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/memorias-app/memorias/cmd/api/models"
	"github.com/memorias-app/memorias/cmd/api/service"
	"github.com/memorias-app/memorias/common/logger"
	common "github.com/memorias-app/memorias/common/models"
)

// Media is the media operations surface the handler needs. Implemented by
// service.MediaService.
type Media interface {
	AddImages(ctx context.Context, userID string, albumID uuid.UUID, uploads []service.FileUpload) ([]*models.Media, error)
	AddText(ctx context.Context, userID string, albumID uuid.UUID, text string) ([]*models.Media, error)
	AddSong(ctx context.Context, userID string, albumID uuid.UUID, song common.Song) ([]*models.Media, error)
	Remove(ctx context.Context, userID string, albumID, mediaID uuid.UUID) ([]*models.Media, error)
}

// MediaHandler handles album media requests
type MediaHandler struct {
	media Media
	log   *logger.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(media Media, log *logger.Logger) *MediaHandler {
	return &MediaHandler{media: media, log: log}
}

// textRequest is the body for adding a text note
type textRequest struct {
	Text string `json:"text"`
}

// AddImages accepts a multipart form with one or more files under "images"
// and returns the album's refreshed media list
func (h *MediaHandler) AddImages(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	albumID, err := parseAlbumID(c)
	if err != nil {
		return writeError(c, err)
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "expected multipart form"})
	}

	files := form.File["images"]
	uploads := make([]service.FileUpload, 0, len(files))
	for _, file := range files {
		uploads = append(uploads, fileUpload(file))
	}

	items, err := h.media.AddImages(c.Request().Context(), userID, albumID, uploads)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, items)
}

// AddText records a text note on the album
func (h *MediaHandler) AddText(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	albumID, err := parseAlbumID(c)
	if err != nil {
		return writeError(c, err)
	}

	var req textRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	items, err := h.media.AddText(c.Request().Context(), userID, albumID, req.Text)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, items)
}

// AddSong records a catalog song on the album
func (h *MediaHandler) AddSong(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	albumID, err := parseAlbumID(c)
	if err != nil {
		return writeError(c, err)
	}

	var song common.Song
	if err := c.Bind(&song); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body"})
	}

	items, err := h.media.AddSong(c.Request().Context(), userID, albumID, song)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, items)
}

// Remove deletes one media item and returns the refreshed media list
func (h *MediaHandler) Remove(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	albumID, err := parseAlbumID(c)
	if err != nil {
		return writeError(c, err)
	}

	mediaID, err := parseMediaID(c)
	if err != nil {
		return writeError(c, err)
	}

	items, err := h.media.Remove(c.Request().Context(), userID, albumID, mediaID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, items)
}

// fileUpload adapts a multipart file header into a lazily opened upload
func fileUpload(file *multipart.FileHeader) service.FileUpload {
	return service.FileUpload{
		Name:        file.Filename,
		Size:        file.Size,
		ContentType: file.Header.Get("Content-Type"),
		Open: func() (io.ReadCloser, error) {
			return file.Open()
		},
	}
}
