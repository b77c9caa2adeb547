package artfetch_test

import (
	"testing"
	"time"

	"github.com/artfetch/artfetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeImageURL(t *testing.T) {
	t.Parallel()

	const page = "https://blog.example.com/posts/hello"

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			"absolute URL passes through",
			"https://cdn.example.com/img.jpg",
			"https://cdn.example.com/img.jpg",
		},
		{
			"protocol-relative inherits page scheme",
			"//cdn.example.com/img.jpg",
			"https://cdn.example.com/img.jpg",
		},
		{
			"root-relative inherits page origin",
			"/img.jpg",
			"https://blog.example.com/img.jpg",
		},
		{
			"path-relative resolves against page path",
			"img.jpg",
			"https://blog.example.com/posts/img.jpg",
		},
		{
			"HTML entities are decoded",
			"https://cdn.example.com/a.jpg&amp;w=100",
			"https://cdn.example.com/a.jpg&w=100",
		},
		{
			"notion next image proxy is unwrapped",
			"/_next/image?url=https%3A%2F%2Ffiles.example.com%2Freal.png&w=1920",
			"https://files.example.com/real.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := artfetch.NormalizeImageURL(tt.raw, page)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("data URI is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := artfetch.NormalizeImageURL("data:image/png;base64,AAAA", page)
		assert.Equal(t, artfetch.EINVALID, artfetch.ErrorCode(err))
	})

	t.Run("empty URL is rejected", func(t *testing.T) {
		t.Parallel()

		_, err := artfetch.NormalizeImageURL("", page)
		assert.Equal(t, artfetch.EINVALID, artfetch.ErrorCode(err))
	})
}

func TestUnwrapProxyURL(t *testing.T) {
	t.Parallel()

	t.Run("extracts encoded inner URL", func(t *testing.T) {
		t.Parallel()

		got := artfetch.UnwrapProxyURL("https://acme.notion.site/image?url=https%3A%2F%2Ffiles.example.com%2Fphoto.jpg")
		assert.Equal(t, "https://files.example.com/photo.jpg", got)
	})

	t.Run("non-proxy URL returns empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, artfetch.UnwrapProxyURL("https://cdn.example.com/img.jpg"))
	})

	t.Run("proxy without url param returns empty", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, artfetch.UnwrapProxyURL("https://acme.notion.site/image?w=1920"))
	})
}

func TestImageExtension(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".png", artfetch.ImageExtension("https://cdn.example.com/a.PNG?x=1"))
	assert.Equal(t, ".webp", artfetch.ImageExtension("https://cdn.example.com/a.webp"))
	assert.Equal(t, ".jpg", artfetch.ImageExtension("https://cdn.example.com/no-extension"))
	assert.Equal(t, ".jpg", artfetch.ImageExtension("https://cdn.example.com/a.exe"))
}

func TestExtensionForContentType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".jpg", artfetch.ExtensionForContentType("image/jpeg"))
	assert.Equal(t, ".webp", artfetch.ExtensionForContentType("image/webp; charset=binary"))
	assert.Empty(t, artfetch.ExtensionForContentType("text/html"))
}

func TestLocalImageName(t *testing.T) {
	t.Parallel()

	at := time.Date(2025, 1, 2, 15, 4, 5, 123456000, time.UTC)
	assert.Equal(t, "20250102_150405_123456_3.png", artfetch.LocalImageName(at, 3, ".png"))
}
