package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/memorias-app/memorias/cmd/api/service"
	"github.com/memorias-app/memorias/common/logger"
	"github.com/memorias-app/memorias/common/models"
)

// Suggester is the suggestion surface the handler needs. Implemented by
// service.SuggestService.
type Suggester interface {
	SearchMusic(ctx context.Context, key, query string) ([]models.Song, error)
	SearchPlaces(ctx context.Context, key, query string) ([]models.Place, error)
}

// SuggestHandler handles typeahead suggestion requests
type SuggestHandler struct {
	suggest Suggester
	log     *logger.Logger
}

// NewSuggestHandler creates a new suggestion handler
func NewSuggestHandler(suggest Suggester, log *logger.Logger) *SuggestHandler {
	return &SuggestHandler{suggest: suggest, log: log}
}

// Music returns song suggestions for ?q=
func (h *SuggestHandler) Music(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	songs, err := h.suggest.SearchMusic(c.Request().Context(), userID, c.QueryParam("q"))
	if err != nil {
		// A superseded query has a newer sibling in flight; its response is
		// stale the moment it exists, so send nothing the client would render.
		if errors.Is(err, service.ErrSuperseded) {
			return c.NoContent(http.StatusNoContent)
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, songs)
}

// Places returns place suggestions for ?q=
func (h *SuggestHandler) Places(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return writeError(c, err)
	}

	places, err := h.suggest.SearchPlaces(c.Request().Context(), userID, c.QueryParam("q"))
	if err != nil {
		if errors.Is(err, service.ErrSuperseded) {
			return c.NoContent(http.StatusNoContent)
		}
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, places)
}
