package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/memorias-app/memorias/cmd/api/models"
	"github.com/memorias-app/memorias/common/clients"
)

// errorResponse is the uniform error body for every failed request
type errorResponse struct {
	Error string `json:"error"`
}

// writeError maps domain errors onto HTTP statuses. Wrapped sentinels carry
// the classification; anything unrecognized is a store/internal failure.
func writeError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, models.ErrValidation):
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrNotFound):
		return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, models.ErrAuthRequired), errors.Is(err, clients.ErrNoSession):
		return c.JSON(http.StatusUnauthorized, errorResponse{Error: "authentication required"})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// Client went away; nothing useful to send.
		return nil
	default:
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

// currentUserID reads the identity set by the session middleware
func currentUserID(c echo.Context) (string, error) {
	userID, ok := c.Get("user_id").(string)
	if !ok || userID == "" {
		return "", models.ErrAuthRequired
	}
	return userID, nil
}

func parseAlbumID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("albumId"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid album id", models.ErrValidation)
	}
	return id, nil
}

func parseMediaID(c echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("mediaId"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid media id", models.ErrValidation)
	}
	return id, nil
}
