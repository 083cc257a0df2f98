package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/memorias-app/memorias/cmd/api/models"
	"github.com/memorias-app/memorias/common/blob"
	"github.com/memorias-app/memorias/common/logger"
	common "github.com/memorias-app/memorias/common/models"
	"github.com/memorias-app/memorias/common/queue"
	"github.com/memorias-app/memorias/common/security"
)

// maxConcurrentUploads bounds the blob-store fan-out for a single batch
const maxConcurrentUploads = 4

// FileUpload is a single incoming file. Open is called once, inside the
// upload worker, so multipart bodies are streamed rather than buffered.
type FileUpload struct {
	Name        string
	Size        int64
	ContentType string
	Open        func() (io.ReadCloser, error)
}

// MediaService implements media writes: image uploads, text notes and songs.
// Every mutation checks album ownership first and returns the album's full
// media list afterwards, so callers always render fresh state.
type MediaService struct {
	albums  AlbumStore
	media   MediaStore
	blob    blob.Store
	queue   queue.Queue
	urls    *security.URLValidator
	log     *logger.Logger
}

// NewMediaService creates a new media service
func NewMediaService(albums AlbumStore, media MediaStore, store blob.Store, q queue.Queue, log *logger.Logger) *MediaService {
	return &MediaService{
		albums: albums,
		media:  media,
		blob:   store,
		queue:  q,
		urls:   security.NewURLValidator(),
		log:    log,
	}
}

// AddImages uploads all files to the blob store concurrently, then records
// them in a single batch. The batch is all-or-nothing: if any upload fails,
// nothing is recorded and already-uploaded blobs are queued for deletion.
func (s *MediaService) AddImages(ctx context.Context, userID string, albumID uuid.UUID, uploads []FileUpload) ([]*models.Media, error) {
	if _, err := s.albums.GetOne(ctx, albumID, userID); err != nil {
		return nil, err
	}
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: at least one file is required", models.ErrValidation)
	}

	urls := make([]string, len(uploads))
	paths := make([]string, len(uploads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentUploads)

	for i, upload := range uploads {
		i, upload := i, upload
		g.Go(func() error {
			path := blob.ObjectPath(albumID.String(), upload.Name, time.Now())

			reader, err := upload.Open()
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", upload.Name, err)
			}
			defer reader.Close()

			if err := s.blob.Upload(gctx, path, reader, upload.Size, upload.ContentType); err != nil {
				return fmt.Errorf("failed to upload %s: %w", upload.Name, err)
			}

			paths[i] = path
			urls[i] = s.blob.PublicURL(path)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.enqueueBlobCleanup(ctx, albumID, compact(paths))
		return nil, err
	}

	now := time.Now().UTC()
	items := make([]*models.Media, 0, len(uploads))
	for i := range uploads {
		url := urls[i]
		items = append(items, &models.Media{
			ID:        uuid.New(),
			AlbumID:   albumID,
			Type:      models.MediaTypeImage,
			URL:       &url,
			CreatedAt: now,
		})
	}

	if err := s.media.InsertBatch(ctx, items); err != nil {
		s.enqueueBlobCleanup(ctx, albumID, paths)
		return nil, err
	}

	s.log.Info("images added", "album_id", albumID, "count", len(items))
	return s.media.ListByAlbum(ctx, albumID)
}

// AddText records a text note on an owned album
func (s *MediaService) AddText(ctx context.Context, userID string, albumID uuid.UUID, text string) ([]*models.Media, error) {
	if _, err := s.albums.GetOne(ctx, albumID, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: text must not be empty", models.ErrValidation)
	}

	media := &models.Media{
		ID:        uuid.New(),
		AlbumID:   albumID,
		Type:      models.MediaTypeText,
		Content:   &text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.media.Insert(ctx, media); err != nil {
		return nil, err
	}

	return s.media.ListByAlbum(ctx, albumID)
}

// AddSong records a catalog song on an owned album. The song payload is
// serialized to JSON content; the cover-art URL is stored separately and must
// point at a public http(s) host.
func (s *MediaService) AddSong(ctx context.Context, userID string, albumID uuid.UUID, song common.Song) ([]*models.Media, error) {
	if _, err := s.albums.GetOne(ctx, albumID, userID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(song.Title) == "" {
		return nil, fmt.Errorf("%w: song title must not be empty", models.ErrValidation)
	}
	if err := s.urls.Validate(song.ImageURL); err != nil {
		return nil, fmt.Errorf("%w: cover art url: %v", models.ErrValidation, err)
	}

	content, err := song.Encode()
	if err != nil {
		return nil, fmt.Errorf("failed to encode song: %w", err)
	}

	media := &models.Media{
		ID:        uuid.New(),
		AlbumID:   albumID,
		Type:      models.MediaTypeMusic,
		URL:       &song.ImageURL,
		Content:   &content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.media.Insert(ctx, media); err != nil {
		return nil, err
	}

	return s.media.ListByAlbum(ctx, albumID)
}

// Remove deletes a media item from an owned album. For stored blobs the
// object is deleted best-effort first; a failed blob delete is queued for
// retry and never blocks removing the row.
func (s *MediaService) Remove(ctx context.Context, userID string, albumID, mediaID uuid.UUID) ([]*models.Media, error) {
	if _, err := s.albums.GetOne(ctx, albumID, userID); err != nil {
		return nil, err
	}

	media, err := s.media.GetOne(ctx, mediaID, albumID)
	if err != nil {
		return nil, err
	}

	// Song cover art lives on an external CDN; PathFromURL maps only our own
	// store's URLs, so external URLs fall through untouched.
	if media.URL != nil {
		if path := s.blob.PathFromURL(*media.URL); path != "" {
			if err := s.blob.Remove(ctx, path); err != nil {
				s.log.Warn("blob delete failed, queueing retry", "path", path, "error", err)
				s.enqueueBlobCleanup(ctx, albumID, []string{path})
			}
		}
	}

	if err := s.media.Delete(ctx, mediaID); err != nil {
		return nil, err
	}

	s.log.Info("media removed", "album_id", albumID, "media_id", mediaID)
	return s.media.ListByAlbum(ctx, albumID)
}

func (s *MediaService) enqueueBlobCleanup(ctx context.Context, albumID uuid.UUID, paths []string) {
	if len(paths) == 0 {
		return
	}
	msg, err := encodeCleanupTask(cleanupTask{Paths: paths})
	if err != nil {
		s.log.Error("failed to encode blob cleanup task", "error", err)
		return
	}
	if err := s.queue.Publish(ctx, TopicBlobCleanup, albumID.String(), msg); err != nil {
		s.log.Error("failed to enqueue blob cleanup", "error", err, "paths", paths)
	}
}

// compact drops empty entries left by uploads that never completed
func compact(paths []string) []string {
	out := paths[:0:0]
	for _, p := range paths {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
