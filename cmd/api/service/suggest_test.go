package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memorias-app/memorias/common/cache"
	"github.com/memorias-app/memorias/common/models"
)

type fakeCatalog struct {
	calls atomic.Int64
	songs []models.Song
	err   error
}

func (f *fakeCatalog) SearchTracks(ctx context.Context, query string, limit int) ([]models.Song, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.songs, nil
}

type fakeGeocoder struct {
	calls  atomic.Int64
	places []models.Place
	err    error
}

func (f *fakeGeocoder) SearchPlaces(ctx context.Context, query string, limit int) ([]models.Place, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.places, nil
}

func newSuggestFixture(music *fakeCatalog, places *fakeGeocoder) *SuggestService {
	return NewSuggestService(music, places, cache.NewMemoryCache(testLogger()),
		time.Millisecond, 10, time.Minute, testLogger())
}

func TestSearchMusic(t *testing.T) {
	catalog := &fakeCatalog{songs: []models.Song{{Title: "x", Artist: "y"}}}
	svc := newSuggestFixture(catalog, &fakeGeocoder{})

	songs, err := svc.SearchMusic(context.Background(), "user-1", "x")
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, "x", songs[0].Title)
}

func TestSearchMusicEmptyQuery(t *testing.T) {
	catalog := &fakeCatalog{}
	svc := newSuggestFixture(catalog, &fakeGeocoder{})

	songs, err := svc.SearchMusic(context.Background(), "user-1", "  ")
	require.NoError(t, err)
	assert.Empty(t, songs)
	assert.Equal(t, int64(0), catalog.calls.Load())
}

func TestSearchMusicDegradesOnUpstreamError(t *testing.T) {
	catalog := &fakeCatalog{err: errors.New("catalog down")}
	svc := newSuggestFixture(catalog, &fakeGeocoder{})

	songs, err := svc.SearchMusic(context.Background(), "user-1", "x")
	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestSearchMusicCachesResults(t *testing.T) {
	catalog := &fakeCatalog{songs: []models.Song{{Title: "x"}}}
	svc := newSuggestFixture(catalog, &fakeGeocoder{})

	_, err := svc.SearchMusic(context.Background(), "user-1", "Queen")
	require.NoError(t, err)

	// same query again, case-insensitive, is served from cache
	songs, err := svc.SearchMusic(context.Background(), "user-2", "queen")
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, int64(1), catalog.calls.Load())
}

func TestSearchPlaces(t *testing.T) {
	geo := &fakeGeocoder{places: []models.Place{{Label: "Lisbon, Portugal", Value: "Lisbon, Portugal"}}}
	svc := newSuggestFixture(&fakeCatalog{}, geo)

	places, err := svc.SearchPlaces(context.Background(), "user-1", "Lisbon")
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, "Lisbon, Portugal", places[0].Label)
}

func TestSearchPlacesDegradesOnUpstreamError(t *testing.T) {
	geo := &fakeGeocoder{err: errors.New("nominatim down")}
	svc := newSuggestFixture(&fakeCatalog{}, geo)

	places, err := svc.SearchPlaces(context.Background(), "user-1", "Lisbon")
	require.NoError(t, err)
	assert.Empty(t, places)
}
