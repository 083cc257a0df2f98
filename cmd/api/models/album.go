package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Album is a user-owned collection of memories.
// Maps to: album table.
type Album struct {
	ID          uuid.UUID `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"user_id"`
	Title       string    `db:"title" json:"title"`
	Location    string    `db:"location" json:"location"`
	Description string    `db:"description" json:"description"`
	IsPublic    bool      `db:"is_public" json:"is_public"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// AlbumFields carries the mutable album attributes for create and update.
// Updates replace all four fields; there is no partial merge.
type AlbumFields struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
}

// Validate checks required fields before any store access
func (f AlbumFields) Validate() error {
	if strings.TrimSpace(f.Title) == "" {
		return fmt.Errorf("%w: title must not be empty", ErrValidation)
	}
	return nil
}

// AlbumDetail is an album together with its media, newest first
type AlbumDetail struct {
	Album Album   `json:"album"`
	Media []Media `json:"media"`
}
