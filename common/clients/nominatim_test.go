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

func TestNominatimSearchPlaces(t *testing.T) {
	var gotQuery, gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"display_name": "Lisbon, Portugal", "lat": "38.7077507", "lon": "-9.1365919"},
			{"display_name": "Lisbon, Ohio, United States", "lat": "40.772", "lon": "-80.768"}
		]`))
	}))
	defer srv.Close()

	log := logger.New("error", "json")
	client := NewNominatimClient(srv.URL, NewHTTPClient(time.Second, log), log)

	places, err := client.SearchPlaces(context.Background(), "Lisbon", 10)
	require.NoError(t, err)
	require.Len(t, places, 2)

	assert.Equal(t, "format=json&q=Lisbon&limit=10", gotQuery)
	assert.Equal(t, "memorias-api", gotAgent)
	assert.Equal(t, "Lisbon, Portugal", places[0].Label)
	assert.Equal(t, "Lisbon, Portugal", places[0].Value)
	// coordinates stay as upstream strings
	assert.Equal(t, "38.7077507", places[0].Lat)
	assert.Equal(t, "-9.1365919", places[0].Lon)
}

func TestNominatimSearchPlacesEmptyQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("geocoder must not be called for an empty query")
	}))
	defer srv.Close()

	log := logger.New("error", "json")
	client := NewNominatimClient(srv.URL, NewHTTPClient(time.Second, log), log)

	places, err := client.SearchPlaces(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, places)
}
