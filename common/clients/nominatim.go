package clients

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/memorias-app/memorias/common/models"
)

// Geocoder searches a public place catalog for location suggestions
type Geocoder interface {
	SearchPlaces(ctx context.Context, query string, limit int) ([]models.Place, error)
}

// NominatimClient implements Geocoder against the OpenStreetMap Nominatim
// search API. Unauthenticated; usage policy requires throttling, which the
// suggestion endpoints enforce via the rate limiter.
type NominatimClient struct {
	baseURL string
	http    *HTTPClient
	logger  Logger
}

type nominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// NewNominatimClient creates a geocoding client
func NewNominatimClient(baseURL string, http *HTTPClient, logger Logger) *NominatimClient {
	return &NominatimClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http,
		logger:  logger,
	}
}

// SearchPlaces looks up places matching the free-text query. An empty query
// returns an empty slice without calling the service.
func (c *NominatimClient) SearchPlaces(ctx context.Context, query string, limit int) ([]models.Place, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Place{}, nil
	}

	searchURL := fmt.Sprintf("%s/search?format=json&q=%s&limit=%d",
		c.baseURL, url.QueryEscape(query), limit)

	headers := map[string]string{
		// Nominatim requires an identifying user agent
		"User-Agent": "memorias-api",
	}

	var payload []nominatimPlace
	if err := c.http.GetJSON(ctx, searchURL, headers, &payload); err != nil {
		return nil, fmt.Errorf("place search: %w", err)
	}

	places := make([]models.Place, 0, len(payload))
	for _, item := range payload {
		places = append(places, models.Place{
			Label: item.DisplayName,
			Value: item.DisplayName,
			Lat:   item.Lat,
			Lon:   item.Lon,
		})
	}

	c.logger.Debug("place search", "query", query, "results", len(places))
	return places, nil
}
