package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	common "github.com/memorias-app/memorias/common/models"
)

// MediaType tags the media variant
type MediaType string

const (
	MediaTypeImage MediaType = "image"
	MediaTypeText  MediaType = "text"
	MediaTypeMusic MediaType = "music"
)

// Media is a single item attached to an album: an image, a text note, or a
// song from the music catalog.
// Maps to: media table.
//
// Field population per variant:
//   - image: URL set (stored blob), Content empty
//   - text:  Content set, URL empty
//   - music: URL set (external cover art), Content set (song JSON)
//
// Consumers must branch on Type before interpreting URL/Content.
type Media struct {
	ID        uuid.UUID `db:"id" json:"id"`
	AlbumID   uuid.UUID `db:"album_id" json:"album_id"`
	Type      MediaType `db:"type" json:"type"`
	URL       *string   `db:"url" json:"url,omitempty"`
	Content   *string   `db:"content" json:"content,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Validate enforces the variant population rule at the repository boundary
func (m Media) Validate() error {
	hasURL := m.URL != nil && *m.URL != ""
	hasContent := m.Content != nil && *m.Content != ""

	switch m.Type {
	case MediaTypeImage:
		if !hasURL || hasContent {
			return fmt.Errorf("%w: image media requires url and no content", ErrValidation)
		}
	case MediaTypeText:
		if hasURL || !hasContent {
			return fmt.Errorf("%w: text media requires content and no url", ErrValidation)
		}
	case MediaTypeMusic:
		if !hasURL || !hasContent {
			return fmt.Errorf("%w: music media requires url and content", ErrValidation)
		}
	default:
		return fmt.Errorf("%w: unknown media type %q", ErrValidation, m.Type)
	}
	return nil
}

// Song decodes the music payload. Returns ok=false for non-music media or
// content that does not parse; callers fall back to raw text display.
func (m Media) Song() (common.Song, bool) {
	if m.Type != MediaTypeMusic || m.Content == nil {
		return common.Song{}, false
	}
	return common.ParseSongContent(*m.Content)
}
