package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Song is a track picked from the public music catalog. The JSON field names
// are part of the persisted format: a song media row stores exactly this
// document in its content column, and listings must round-trip it unchanged.
type Song struct {
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Album    string `json:"album"`
	ImageURL string `json:"imageUrl"`
}

// Encode serializes the song for the media content column
func (s Song) Encode() (string, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("encode song: %w", err)
	}
	return string(data), nil
}

// ParseSongContent decodes a media content value into a Song. Returns ok=false
// for content that is not a song document; callers fall back to displaying the
// raw text, so malformed content never fails a listing.
func ParseSongContent(content string) (Song, bool) {
	if !strings.HasPrefix(strings.TrimSpace(content), "{") {
		return Song{}, false
	}

	var song Song
	if err := json.Unmarshal([]byte(content), &song); err != nil {
		return Song{}, false
	}
	return song, true
}
