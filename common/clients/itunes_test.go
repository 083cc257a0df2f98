package clients

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memorias-app/memorias/common/logger"
)

func TestITunesSearchTracks(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"resultCount": 2,
			"results": [
				{"trackName": "Bohemian Rhapsody", "artistName": "Queen", "collectionName": "A Night at the Opera", "artworkUrl100": "https://cdn.example.com/100x100bb.jpg"},
				{"trackName": "Under Pressure", "artistName": "Queen", "collectionName": "Hot Space", "artworkUrl100": "https://cdn.example.com/100x100bb.jpg"}
			]
		}`))
	}))
	defer srv.Close()

	log := logger.New("error", "json")
	client := NewITunesClient(srv.URL, NewHTTPClient(time.Second, log), log)

	songs, err := client.SearchTracks(context.Background(), "bohemian rhapsody", 10)
	require.NoError(t, err)
	require.Len(t, songs, 2)

	assert.Equal(t, "term=bohemian+rhapsody&media=music&limit=10", gotQuery)
	assert.Equal(t, "Bohemian Rhapsody", songs[0].Title)
	assert.Equal(t, "Queen", songs[0].Artist)
	assert.Equal(t, "A Night at the Opera", songs[0].Album)
	// thumbnails are upgraded to the 600x600 rendition
	assert.Equal(t, "https://cdn.example.com/600x600bb.jpg", songs[0].ImageURL)
}

func TestITunesSearchTracksEmptyQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("catalog must not be called for an empty query")
	}))
	defer srv.Close()

	log := logger.New("error", "json")
	client := NewITunesClient(srv.URL, NewHTTPClient(time.Second, log), log)

	songs, err := client.SearchTracks(context.Background(), "   ", 10)
	require.NoError(t, err)
	assert.Empty(t, songs)
}

func TestITunesSearchTracksUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	log := logger.New("error", "json")
	client := NewITunesClient(srv.URL, NewHTTPClient(time.Second, log), log)

	_, err := client.SearchTracks(context.Background(), "queen", 10)
	assert.Error(t, err)
}
