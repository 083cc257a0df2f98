package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/memorias-app/memorias/cmd/api/models"
	"github.com/memorias-app/memorias/common/db"
)

// AlbumRepository handles database operations for albums
type AlbumRepository struct {
	db *db.DB
}

// NewAlbumRepository creates a new album repository
func NewAlbumRepository(db *db.DB) *AlbumRepository {
	return &AlbumRepository{db: db}
}

// GetOwned retrieves all albums owned by a user, newest first
func (r *AlbumRepository) GetOwned(ctx context.Context, userID string) ([]*models.Album, error) {
	query := `
		SELECT id, user_id, title, location, description, is_public, created_at
		FROM album
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list albums: %w", err)
	}
	defer rows.Close()

	var albums []*models.Album
	for rows.Next() {
		album := &models.Album{}
		err := rows.Scan(
			&album.ID,
			&album.UserID,
			&album.Title,
			&album.Location,
			&album.Description,
			&album.IsPublic,
			&album.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan album: %w", err)
		}
		albums = append(albums, album)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating albums: %w", err)
	}

	return albums, nil
}

// GetOne retrieves a single album scoped to its owner.
// Returns ErrNotFound when the album is absent or owned by someone else.
func (r *AlbumRepository) GetOne(ctx context.Context, albumID uuid.UUID, userID string) (*models.Album, error) {
	query := `
		SELECT id, user_id, title, location, description, is_public, created_at
		FROM album
		WHERE id = $1 AND user_id = $2
	`

	album := &models.Album{}
	err := r.db.QueryRow(ctx, query, albumID, userID).Scan(
		&album.ID,
		&album.UserID,
		&album.Title,
		&album.Location,
		&album.Description,
		&album.IsPublic,
		&album.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("album %s: %w", albumID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get album: %w", err)
	}

	return album, nil
}

// Upsert inserts an album or, when the user already has one with the same
// title, updates it in place
func (r *AlbumRepository) Upsert(ctx context.Context, userID string, fields models.AlbumFields) (*models.Album, error) {
	query := `
		INSERT INTO album (id, user_id, title, location, description, is_public, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, title) DO UPDATE
		SET location = EXCLUDED.location,
		    description = EXCLUDED.description,
		    is_public = EXCLUDED.is_public
		RETURNING id, user_id, title, location, description, is_public, created_at
	`

	album := &models.Album{}
	err := r.db.QueryRow(ctx, query,
		uuid.New(),
		userID,
		fields.Title,
		fields.Location,
		fields.Description,
		fields.IsPublic,
		time.Now().UTC(),
	).Scan(
		&album.ID,
		&album.UserID,
		&album.Title,
		&album.Location,
		&album.Description,
		&album.IsPublic,
		&album.CreatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to upsert album: %w", err)
	}

	return album, nil
}

// Update replaces all mutable album fields.
// Returns ErrNotFound when the album is absent or owned by someone else.
func (r *AlbumRepository) Update(ctx context.Context, albumID uuid.UUID, userID string, fields models.AlbumFields) (*models.Album, error) {
	query := `
		UPDATE album
		SET title = $3, location = $4, description = $5, is_public = $6
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, location, description, is_public, created_at
	`

	album := &models.Album{}
	err := r.db.QueryRow(ctx, query,
		albumID,
		userID,
		fields.Title,
		fields.Location,
		fields.Description,
		fields.IsPublic,
	).Scan(
		&album.ID,
		&album.UserID,
		&album.Title,
		&album.Location,
		&album.Description,
		&album.IsPublic,
		&album.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("album %s: %w", albumID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update album: %w", err)
	}

	return album, nil
}
