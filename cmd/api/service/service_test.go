package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/memorias-app/memorias/cmd/api/models"
	"github.com/memorias-app/memorias/common/logger"
	"github.com/memorias-app/memorias/common/queue"
)

func testLogger() *logger.Logger {
	return logger.New("error", "json")
}

func strptr(s string) *string { return &s }

// fakeAlbums is an in-memory AlbumStore
type fakeAlbums struct {
	mu     sync.Mutex
	albums map[uuid.UUID]*models.Album
}

func newFakeAlbums() *fakeAlbums {
	return &fakeAlbums{albums: make(map[uuid.UUID]*models.Album)}
}

func (f *fakeAlbums) add(userID, title string) *models.Album {
	f.mu.Lock()
	defer f.mu.Unlock()
	album := &models.Album{
		ID:        uuid.New(),
		UserID:    userID,
		Title:     title,
		CreatedAt: time.Now().UTC(),
	}
	f.albums[album.ID] = album
	return album
}

func (f *fakeAlbums) GetOwned(ctx context.Context, userID string) ([]*models.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Album
	for _, a := range f.albums {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAlbums) GetOne(ctx context.Context, albumID uuid.UUID, userID string) (*models.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	album, ok := f.albums[albumID]
	if !ok || album.UserID != userID {
		return nil, fmt.Errorf("album %s: %w", albumID, models.ErrNotFound)
	}
	return album, nil
}

func (f *fakeAlbums) Upsert(ctx context.Context, userID string, fields models.AlbumFields) (*models.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.albums {
		if a.UserID == userID && a.Title == fields.Title {
			a.Location = fields.Location
			a.Description = fields.Description
			a.IsPublic = fields.IsPublic
			return a, nil
		}
	}
	album := &models.Album{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       fields.Title,
		Location:    fields.Location,
		Description: fields.Description,
		IsPublic:    fields.IsPublic,
		CreatedAt:   time.Now().UTC(),
	}
	f.albums[album.ID] = album
	return album, nil
}

func (f *fakeAlbums) Update(ctx context.Context, albumID uuid.UUID, userID string, fields models.AlbumFields) (*models.Album, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	album, ok := f.albums[albumID]
	if !ok || album.UserID != userID {
		return nil, fmt.Errorf("album %s: %w", albumID, models.ErrNotFound)
	}
	album.Title = fields.Title
	album.Location = fields.Location
	album.Description = fields.Description
	album.IsPublic = fields.IsPublic
	return album, nil
}

// fakeMedia is an in-memory MediaStore. Items are returned newest-insert
// first, matching the repository's created_at ordering.
type fakeMedia struct {
	mu        sync.Mutex
	items     []*models.Media
	insertErr error
}

func newFakeMedia() *fakeMedia { return &fakeMedia{} }

func (f *fakeMedia) ListByAlbum(ctx context.Context, albumID uuid.UUID) ([]*models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.Media
	for i := len(f.items) - 1; i >= 0; i-- {
		if f.items[i].AlbumID == albumID {
			out = append(out, f.items[i])
		}
	}
	return out, nil
}

func (f *fakeMedia) GetOne(ctx context.Context, mediaID, albumID uuid.UUID) (*models.Media, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, m := range f.items {
		if m.ID == mediaID && m.AlbumID == albumID {
			return m, nil
		}
	}
	return nil, fmt.Errorf("media %s: %w", mediaID, models.ErrNotFound)
}

func (f *fakeMedia) Insert(ctx context.Context, media *models.Media) error {
	if err := media.Validate(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.items = append(f.items, media)
	return nil
}

func (f *fakeMedia) InsertBatch(ctx context.Context, items []*models.Media) error {
	for _, m := range items {
		if err := m.Validate(); err != nil {
			return err
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.items = append(f.items, items...)
	return nil
}

func (f *fakeMedia) Delete(ctx context.Context, mediaID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, m := range f.items {
		if m.ID == mediaID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("media %s: %w", mediaID, models.ErrNotFound)
}

// fakeBlob is an in-memory blob.Store
type fakeBlob struct {
	mu        sync.Mutex
	objects   map[string][]byte
	removed   []string
	failName  string // uploads whose path contains this fail
	removeErr error
}

func newFakeBlob() *fakeBlob {
	return &fakeBlob{objects: make(map[string][]byte)}
}

func (f *fakeBlob) Upload(ctx context.Context, path string, reader io.Reader, size int64, contentType string) error {
	if f.failName != "" && strings.Contains(path, f.failName) {
		return fmt.Errorf("upload %s: backend unavailable", path)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[path] = data
	return nil
}

const fakeBlobBase = "https://cdn.test/album-media/"

func (f *fakeBlob) PublicURL(path string) string {
	return fakeBlobBase + path
}

func (f *fakeBlob) Remove(ctx context.Context, paths ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, paths...)
	for _, p := range paths {
		delete(f.objects, p)
	}
	return nil
}

func (f *fakeBlob) PathFromURL(rawURL string) string {
	if !strings.HasPrefix(rawURL, fakeBlobBase) {
		return ""
	}
	return strings.TrimPrefix(rawURL, fakeBlobBase)
}

// fakeQueue records published messages
type fakeQueue struct {
	mu       sync.Mutex
	messages map[string][][]byte
}

func newFakeQueue() *fakeQueue {
	return &fakeQueue{messages: make(map[string][][]byte)}
}

func (q *fakeQueue) Publish(ctx context.Context, topic, key string, message []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.messages[topic] = append(q.messages[topic], message)
	return nil
}

func (q *fakeQueue) Subscribe(ctx context.Context, topic string, handler queue.MessageHandler) error {
	return errors.New("fakeQueue does not deliver")
}

func (q *fakeQueue) Close() error { return nil }
