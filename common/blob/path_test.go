package blob

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectPath(t *testing.T) {
	now := time.UnixMilli(1700000000000)

	path := ObjectPath("1b4e28ba-2fa1-11d2-883f-0016d3cca427", "beach.jpg", now)
	assert.Equal(t, "albums/1b4e28ba-2fa1-11d2-883f-0016d3cca427/1700000000000-beach.jpg", path)
}

func TestObjectPathSanitizesFileName(t *testing.T) {
	now := time.UnixMilli(1000)

	tests := []struct {
		in   string
		want string
	}{
		{"photo with spaces.png", "photo_with_spaces.png"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\pic.jpg`, "pic.jpg"},
		{"", "file"},
		{"..", "file"},
		{"ümlaut.jpg", "_mlaut.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, fmt.Sprintf("albums/a/1000-%s", tt.want), ObjectPath("a", tt.in, now))
		})
	}
}
