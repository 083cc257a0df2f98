package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/memorias-app/memorias/cmd/api/models"
	"github.com/memorias-app/memorias/common/db"
)

// MediaRepository handles database operations for album media
type MediaRepository struct {
	db *db.DB
}

// NewMediaRepository creates a new media repository
func NewMediaRepository(db *db.DB) *MediaRepository {
	return &MediaRepository{db: db}
}

// ListByAlbum retrieves an album's media ordered by creation time descending
func (r *MediaRepository) ListByAlbum(ctx context.Context, albumID uuid.UUID) ([]*models.Media, error) {
	query := `
		SELECT id, album_id, type, url, content, created_at
		FROM media
		WHERE album_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(ctx, query, albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to list media: %w", err)
	}
	defer rows.Close()

	var items []*models.Media
	for rows.Next() {
		media := &models.Media{}
		err := rows.Scan(
			&media.ID,
			&media.AlbumID,
			&media.Type,
			&media.URL,
			&media.Content,
			&media.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan media: %w", err)
		}
		items = append(items, media)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating media: %w", err)
	}

	return items, nil
}

// GetOne retrieves a media row scoped to an album
func (r *MediaRepository) GetOne(ctx context.Context, mediaID, albumID uuid.UUID) (*models.Media, error) {
	query := `
		SELECT id, album_id, type, url, content, created_at
		FROM media
		WHERE id = $1 AND album_id = $2
	`

	media := &models.Media{}
	err := r.db.QueryRow(ctx, query, mediaID, albumID).Scan(
		&media.ID,
		&media.AlbumID,
		&media.Type,
		&media.URL,
		&media.Content,
		&media.CreatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("media %s: %w", mediaID, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media: %w", err)
	}

	return media, nil
}

// Insert persists a media row after enforcing the variant population rule
func (r *MediaRepository) Insert(ctx context.Context, media *models.Media) error {
	if err := media.Validate(); err != nil {
		return err
	}

	query := `
		INSERT INTO media (id, album_id, type, url, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.db.QueryRow(ctx, query,
		media.ID,
		media.AlbumID,
		media.Type,
		media.URL,
		media.Content,
		media.CreatedAt,
	).Scan(&media.ID, &media.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert media: %w", err)
	}

	return nil
}

// InsertBatch persists several media rows. Rows are validated up front so a
// bad row fails the batch before anything is written.
func (r *MediaRepository) InsertBatch(ctx context.Context, items []*models.Media) error {
	for _, media := range items {
		if err := media.Validate(); err != nil {
			return err
		}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin batch insert: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO media (id, album_id, type, url, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	for _, media := range items {
		_, err := tx.Exec(ctx, query,
			media.ID,
			media.AlbumID,
			media.Type,
			media.URL,
			media.Content,
			media.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert media batch: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit media batch: %w", err)
	}

	return nil
}

// Delete removes a media row.
// Returns ErrNotFound when the row is already gone.
func (r *MediaRepository) Delete(ctx context.Context, mediaID uuid.UUID) error {
	query := `DELETE FROM media WHERE id = $1`

	result, err := r.db.Exec(ctx, query, mediaID)
	if err != nil {
		return fmt.Errorf("failed to delete media: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("media %s: %w", mediaID, models.ErrNotFound)
	}

	return nil
}
