package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/memorias-app/memorias/cmd/api/models"
	"github.com/memorias-app/memorias/common/logger"
)

// AlbumStore is the album persistence surface the services need. Implemented
// by repository.AlbumRepository.
type AlbumStore interface {
	GetOwned(ctx context.Context, userID string) ([]*models.Album, error)
	GetOne(ctx context.Context, albumID uuid.UUID, userID string) (*models.Album, error)
	Upsert(ctx context.Context, userID string, fields models.AlbumFields) (*models.Album, error)
	Update(ctx context.Context, albumID uuid.UUID, userID string, fields models.AlbumFields) (*models.Album, error)
}

// MediaStore is the media persistence surface the services need. Implemented
// by repository.MediaRepository.
type MediaStore interface {
	ListByAlbum(ctx context.Context, albumID uuid.UUID) ([]*models.Media, error)
	GetOne(ctx context.Context, mediaID, albumID uuid.UUID) (*models.Media, error)
	Insert(ctx context.Context, media *models.Media) error
	InsertBatch(ctx context.Context, items []*models.Media) error
	Delete(ctx context.Context, mediaID uuid.UUID) error
}

// AlbumService implements album reads and writes. Every operation is scoped
// to the authenticated owner; other users' albums behave as if absent.
type AlbumService struct {
	albums AlbumStore
	media  MediaStore
	log    *logger.Logger
}

// NewAlbumService creates a new album service
func NewAlbumService(albums AlbumStore, media MediaStore, log *logger.Logger) *AlbumService {
	return &AlbumService{
		albums: albums,
		media:  media,
		log:    log,
	}
}

// List returns the user's albums, newest first, without media
func (s *AlbumService) List(ctx context.Context, userID string) ([]*models.Album, error) {
	return s.albums.GetOwned(ctx, userID)
}

// Detail returns one owned album together with its media, newest first
func (s *AlbumService) Detail(ctx context.Context, userID string, albumID uuid.UUID) (*models.AlbumDetail, error) {
	album, err := s.albums.GetOne(ctx, albumID, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.media.ListByAlbum(ctx, albumID)
	if err != nil {
		return nil, fmt.Errorf("failed to load album media: %w", err)
	}

	detail := &models.AlbumDetail{Album: *album, Media: make([]models.Media, 0, len(items))}
	for _, m := range items {
		detail.Media = append(detail.Media, *m)
	}
	return detail, nil
}

// Create validates the fields and upserts the album. Re-submitting the same
// title for the same user updates the existing album instead of duplicating it.
func (s *AlbumService) Create(ctx context.Context, userID string, fields models.AlbumFields) (*models.Album, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	album, err := s.albums.Upsert(ctx, userID, fields)
	if err != nil {
		return nil, err
	}

	s.log.Info("album saved", "album_id", album.ID, "user_id", userID, "title", album.Title)
	return album, nil
}

// Save replaces all mutable fields of an existing owned album
func (s *AlbumService) Save(ctx context.Context, userID string, albumID uuid.UUID, fields models.AlbumFields) (*models.Album, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	album, err := s.albums.Update(ctx, albumID, userID, fields)
	if err != nil {
		return nil, err
	}

	s.log.Info("album updated", "album_id", album.ID, "user_id", userID)
	return album, nil
}

// Gallery returns all owned albums, each with its media. Feeds the
// landing-page gallery view.
func (s *AlbumService) Gallery(ctx context.Context, userID string) ([]*models.AlbumDetail, error) {
	albums, err := s.albums.GetOwned(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := make([]*models.AlbumDetail, 0, len(albums))
	for _, album := range albums {
		items, err := s.media.ListByAlbum(ctx, album.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to load album media: %w", err)
		}

		detail := &models.AlbumDetail{Album: *album, Media: make([]models.Media, 0, len(items))}
		for _, m := range items {
			detail.Media = append(detail.Media, *m)
		}
		details = append(details, detail)
	}

	return details, nil
}
