package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memorias-app/memorias/cmd/api/service"
	"github.com/memorias-app/memorias/common/models"
)

type stubSuggester struct {
	songs     []models.Song
	places    []models.Place
	err       error
	lastQuery string
}

func (s *stubSuggester) SearchMusic(ctx context.Context, key, query string) ([]models.Song, error) {
	s.lastQuery = query
	return s.songs, s.err
}

func (s *stubSuggester) SearchPlaces(ctx context.Context, key, query string) ([]models.Place, error) {
	s.lastQuery = query
	return s.places, s.err
}

func TestSuggestHandlerMusic(t *testing.T) {
	stub := &stubSuggester{songs: []models.Song{{Title: "x", Artist: "y"}}}
	h := NewSuggestHandler(stub, testLogger())

	c, rec := authedContext(http.MethodGet, "/api/v1/suggest/music?q=queen", "")
	require.NoError(t, h.Music(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "queen", stub.lastQuery)

	var songs []models.Song
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &songs))
	require.Len(t, songs, 1)
	assert.Equal(t, "x", songs[0].Title)
}

func TestSuggestHandlerMusicSuperseded(t *testing.T) {
	stub := &stubSuggester{err: service.ErrSuperseded}
	h := NewSuggestHandler(stub, testLogger())

	c, rec := authedContext(http.MethodGet, "/api/v1/suggest/music?q=que", "")
	require.NoError(t, h.Music(c))

	// a stale query's response carries no body to render
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestSuggestHandlerPlaces(t *testing.T) {
	stub := &stubSuggester{places: []models.Place{{Label: "Lisbon, Portugal"}}}
	h := NewSuggestHandler(stub, testLogger())

	c, rec := authedContext(http.MethodGet, "/api/v1/suggest/places?q=Lisbon", "")
	require.NoError(t, h.Places(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	var places []models.Place
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &places))
	require.Len(t, places, 1)
}

func TestSuggestHandlerRequiresSession(t *testing.T) {
	h := NewSuggestHandler(&stubSuggester{}, testLogger())

	c, rec := authedContext(http.MethodGet, "/api/v1/suggest/music?q=x", "")
	c.Set("user_id", nil)
	require.NoError(t, h.Music(c))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
