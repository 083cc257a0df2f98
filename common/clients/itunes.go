package clients

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/memorias-app/memorias/common/models"
)

// MusicCatalog searches a public music catalog for track suggestions
type MusicCatalog interface {
	SearchTracks(ctx context.Context, query string, limit int) ([]models.Song, error)
}

// ITunesClient implements MusicCatalog against the iTunes Search API.
// The API is unauthenticated and read-only.
type ITunesClient struct {
	baseURL string
	http    *HTTPClient
	logger  Logger
}

// itunesResponse mirrors the subset of the search payload we consume
type itunesResponse struct {
	ResultCount int `json:"resultCount"`
	Results     []struct {
		TrackName      string `json:"trackName"`
		ArtistName     string `json:"artistName"`
		CollectionName string `json:"collectionName"`
		ArtworkURL100  string `json:"artworkUrl100"`
	} `json:"results"`
}

// NewITunesClient creates a music catalog client
func NewITunesClient(baseURL string, http *HTTPClient, logger Logger) *ITunesClient {
	return &ITunesClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http,
		logger:  logger,
	}
}

// SearchTracks looks up songs matching the query. An empty query returns an
// empty slice without calling the catalog.
func (c *ITunesClient) SearchTracks(ctx context.Context, query string, limit int) ([]models.Song, error) {
	if strings.TrimSpace(query) == "" {
		return []models.Song{}, nil
	}

	searchURL := fmt.Sprintf("%s/search?term=%s&media=music&limit=%d",
		c.baseURL, url.QueryEscape(query), limit)

	var payload itunesResponse
	if err := c.http.GetJSON(ctx, searchURL, nil, &payload); err != nil {
		return nil, fmt.Errorf("music catalog search: %w", err)
	}

	songs := make([]models.Song, 0, len(payload.Results))
	for _, item := range payload.Results {
		songs = append(songs, models.Song{
			Title:  item.TrackName,
			Artist: item.ArtistName,
			Album:  item.CollectionName,
			// The catalog returns 100x100 thumbnails; the same CDN serves a
			// larger rendition under the 600x600 key.
			ImageURL: strings.Replace(item.ArtworkURL100, "100x100", "600x600", 1),
		})
	}

	c.logger.Debug("music catalog search", "query", query, "results", len(songs))
	return songs, nil
}
