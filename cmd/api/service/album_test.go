package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/memorias-app/memorias/cmd/api/models"
)

func newAlbumFixture(t *testing.T) (*AlbumService, *fakeAlbums, *fakeMedia) {
	t.Helper()
	albums := newFakeAlbums()
	media := newFakeMedia()
	return NewAlbumService(albums, media, testLogger()), albums, media
}

func TestAlbumCreate(t *testing.T) {
	svc, _, _ := newAlbumFixture(t)

	album, err := svc.Create(context.Background(), "user-1", models.AlbumFields{
		Title:    "Summer 2019",
		Location: "Lisbon, Portugal",
		IsPublic: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", album.UserID)
	assert.Equal(t, "Summer 2019", album.Title)
	assert.True(t, album.IsPublic)
}

func TestAlbumCreateUpsertsByTitle(t *testing.T) {
	svc, _, _ := newAlbumFixture(t)

	first, err := svc.Create(context.Background(), "user-1", models.AlbumFields{Title: "Summer 2019"})
	require.NoError(t, err)

	// same title again updates in place instead of duplicating
	second, err := svc.Create(context.Background(), "user-1", models.AlbumFields{
		Title:    "Summer 2019",
		Location: "Porto, Portugal",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Porto, Portugal", second.Location)

	owned, err := svc.List(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestAlbumCreateValidation(t *testing.T) {
	svc, _, _ := newAlbumFixture(t)

	_, err := svc.Create(context.Background(), "user-1", models.AlbumFields{Title: "  "})
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAlbumDetail(t *testing.T) {
	svc, albums, media := newAlbumFixture(t)
	album := albums.add("user-1", "Summer 2019")

	content := "a note"
	require.NoError(t, media.Insert(context.Background(), &models.Media{
		ID:      uuid.New(),
		AlbumID: album.ID,
		Type:    models.MediaTypeText,
		Content: &content,
	}))

	detail, err := svc.Detail(context.Background(), "user-1", album.ID)
	require.NoError(t, err)
	assert.Equal(t, album.ID, detail.Album.ID)
	require.Len(t, detail.Media, 1)
	assert.Equal(t, models.MediaTypeText, detail.Media[0].Type)
}

func TestAlbumDetailOwnership(t *testing.T) {
	svc, albums, _ := newAlbumFixture(t)
	album := albums.add("user-1", "Summer 2019")

	// someone else's album behaves as if it does not exist
	_, err := svc.Detail(context.Background(), "user-2", album.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAlbumSave(t *testing.T) {
	svc, albums, _ := newAlbumFixture(t)
	album := albums.add("user-1", "Summer 2019")

	updated, err := svc.Save(context.Background(), "user-1", album.ID, models.AlbumFields{
		Title:       "Summer 2019",
		Description: "the trip with the red van",
	})
	require.NoError(t, err)
	assert.Equal(t, "the trip with the red van", updated.Description)

	_, err = svc.Save(context.Background(), "user-2", album.ID, models.AlbumFields{Title: "x"})
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestAlbumGallery(t *testing.T) {
	svc, albums, media := newAlbumFixture(t)
	a1 := albums.add("user-1", "Summer 2019")
	albums.add("user-1", "Winter 2020")
	albums.add("user-2", "Not Yours")

	content := "a note"
	require.NoError(t, media.Insert(context.Background(), &models.Media{
		ID:      uuid.New(),
		AlbumID: a1.ID,
		Type:    models.MediaTypeText,
		Content: &content,
	}))

	details, err := svc.Gallery(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, details, 2)

	byID := map[uuid.UUID]*models.AlbumDetail{}
	for _, d := range details {
		byID[d.Album.ID] = d
	}
	assert.Len(t, byID[a1.ID].Media, 1)
}
