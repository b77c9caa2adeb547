package images_test

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/artfetch/artfetch"
	"github.com/artfetch/artfetch/images"
	"github.com/artfetch/artfetch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testClock = func() time.Time {
	return time.Date(2025, 1, 2, 15, 4, 5, 123456000, time.UTC)
}

func newDoc(urls ...string) *artfetch.Document {
	doc := &artfetch.Document{
		Title:     "T",
		SourceURL: "https://blog.example.com/post",
		FetchedAt: testClock(),
	}
	for _, u := range urls {
		doc.RegisterImage(u)
		doc.Blocks = append(doc.Blocks, artfetch.Block{Kind: artfetch.BlockImage, URL: u})
	}
	return doc
}

func TestResolver_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("downloads and rewrites blocks to local paths", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(ctx context.Context, url, referer string) ([]byte, string, error) {
				assert.Equal(t, "https://blog.example.com/post", referer)
				return []byte("img-bytes"), "image/jpeg", nil
			},
		}

		r := images.NewResolver(fetcher, dir, images.WithClock(testClock))
		doc := newDoc("https://cdn.example.com/a.jpg")

		stats, err := r.Resolve(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Downloaded)
		assert.Zero(t, stats.Failed)

		ref := doc.Images[0]
		assert.Equal(t, artfetch.ImageLocal, ref.State)
		assert.Equal(t, "images/20250102_150405_123456_1.jpg", ref.LocalPath)
		assert.Equal(t, ref.LocalPath, doc.Blocks[0].URL)

		data, err := os.ReadFile(filepath.Join(dir, "20250102_150405_123456_1.jpg"))
		require.NoError(t, err)
		assert.Equal(t, []byte("img-bytes"), data)
	})

	t.Run("failed download keeps original URL in block", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(ctx context.Context, url, referer string) ([]byte, string, error) {
				if url == "https://cdn.example.com/b.png" {
					return nil, "", artfetch.Errorf(artfetch.EHTTPSTATUS, "HTTP 404 for %s", url)
				}
				return []byte("ok"), "image/png", nil
			},
		}

		r := images.NewResolver(fetcher, t.TempDir(), images.WithClock(testClock))
		doc := newDoc(
			"https://cdn.example.com/a.png",
			"https://cdn.example.com/b.png",
			"https://cdn.example.com/c.png",
		)

		stats, err := r.Resolve(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, 2, stats.Downloaded)
		assert.Equal(t, 1, stats.Failed)

		assert.Equal(t, artfetch.ImageFailed, doc.Images[1].State)
		assert.Equal(t, "https://cdn.example.com/b.png", doc.Blocks[1].URL)
		assert.Equal(t, "images/20250102_150405_123456_1.png", doc.Blocks[0].URL)
		assert.Equal(t, "images/20250102_150405_123456_3.png", doc.Blocks[2].URL)
	})

	t.Run("resolving twice never re-downloads", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(ctx context.Context, url, referer string) ([]byte, string, error) {
				calls.Add(1)
				return []byte("ok"), "image/jpeg", nil
			},
		}

		r := images.NewResolver(fetcher, t.TempDir(), images.WithClock(testClock))
		doc := newDoc("https://cdn.example.com/a.jpg")

		_, err := r.Resolve(context.Background(), doc)
		require.NoError(t, err)
		first := doc.Images[0].LocalPath

		stats, err := r.Resolve(context.Background(), doc)
		require.NoError(t, err)

		assert.Equal(t, int64(1), calls.Load())
		assert.Equal(t, 1, stats.Skipped)
		assert.Equal(t, first, doc.Images[0].LocalPath)
	})

	t.Run("normalizes protocol-relative URL before download", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(ctx context.Context, url, referer string) ([]byte, string, error) {
				gotURL = url
				return []byte("ok"), "image/jpeg", nil
			},
		}

		r := images.NewResolver(fetcher, t.TempDir(), images.WithClock(testClock))
		doc := newDoc("//cdn.example.com/img.jpg")

		_, err := r.Resolve(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.example.com/img.jpg", gotURL)
		assert.Equal(t, "https://cdn.example.com/img.jpg", doc.Images[0].ResolvedURL)
	})

	t.Run("two originals with one resolved URL download once", func(t *testing.T) {
		t.Parallel()

		var calls atomic.Int64
		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(ctx context.Context, url, referer string) ([]byte, string, error) {
				calls.Add(1)
				return []byte("ok"), "image/jpeg", nil
			},
		}

		r := images.NewResolver(fetcher, t.TempDir(), images.WithClock(testClock))
		doc := newDoc(
			"https://cdn.example.com/img.jpg",
			"//cdn.example.com/img.jpg",
		)

		stats, err := r.Resolve(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, int64(1), calls.Load())
		assert.Equal(t, 2, stats.Downloaded)
		assert.Equal(t, doc.Images[0].LocalPath, doc.Images[1].LocalPath)
	})

	t.Run("content type refines defaulted extension", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(ctx context.Context, url, referer string) ([]byte, string, error) {
				return []byte("ok"), "image/webp", nil
			},
		}

		r := images.NewResolver(fetcher, t.TempDir(), images.WithClock(testClock))
		doc := newDoc("https://cdn.example.com/no-extension")

		_, err := r.Resolve(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, "images/20250102_150405_123456_1.webp", doc.Images[0].LocalPath)
	})

	t.Run("unfetchable URL fails without dispatching", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(ctx context.Context, url, referer string) ([]byte, string, error) {
				t.Error("should not be called")
				return nil, "", nil
			},
		}

		r := images.NewResolver(fetcher, t.TempDir(), images.WithClock(testClock))
		doc := newDoc("data:image/gif;base64,R0")

		stats, err := r.Resolve(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, 1, stats.Failed)
		assert.Equal(t, artfetch.ImageFailed, doc.Images[0].State)
	})

	t.Run("waits on the per-domain limiter", func(t *testing.T) {
		t.Parallel()

		var waited []string
		fetcher := &mock.ImageFetcher{
			FetchImageFn: func(ctx context.Context, url, referer string) ([]byte, string, error) {
				return []byte("ok"), "image/jpeg", nil
			},
		}
		limiter := &mock.DomainLimiter{
			WaitFn: func(ctx context.Context, domain string) error {
				waited = append(waited, domain)
				return nil
			},
		}

		r := images.NewResolver(fetcher, t.TempDir(),
			images.WithClock(testClock),
			images.WithLimiter(limiter),
			images.WithConcurrency(1),
		)
		doc := newDoc("https://cdn.example.com/a.jpg")

		_, err := r.Resolve(context.Background(), doc)
		require.NoError(t, err)
		assert.Equal(t, []string{"cdn.example.com"}, waited)
	})
}
