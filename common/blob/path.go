package blob

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// ObjectPath builds the storage path for an album media file:
// albums/{albumID}/{unix-millis}-{sanitized-filename}. The millisecond prefix
// keeps concurrent uploads of identically named files from colliding.
func ObjectPath(albumID, fileName string, now time.Time) string {
	return fmt.Sprintf("albums/%s/%d-%s", albumID, now.UnixMilli(), sanitizeFileName(fileName))
}

// sanitizeFileName strips any directory components and characters that are
// unsafe in object keys
func sanitizeFileName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}

	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
