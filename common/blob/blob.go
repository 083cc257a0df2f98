package blob

import (
	"context"
	"io"
)

// Store abstracts the object store used for album media. Uploaded objects are
// publicly readable; PublicURL must return the URL clients can render directly.
type Store interface {
	Upload(ctx context.Context, path string, reader io.Reader, size int64, contentType string) error
	PublicURL(path string) string
	// Remove deletes objects by path. Missing objects are not an error.
	Remove(ctx context.Context, paths ...string) error
	// PathFromURL recovers the object path from a public URL produced by this
	// store. Returns empty string when the URL does not reference this store.
	PathFromURL(rawURL string) string
}
