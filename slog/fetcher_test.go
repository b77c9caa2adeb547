package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/artfetch/artfetch"
	"github.com/artfetch/artfetch/mock"
	artslog "github.com/artfetch/artfetch/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs fetch with bytes and duration", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "<html>content</html>", nil
			},
		}

		fetcher := artslog.NewLoggingFetcher(inner, logger)
		html, err := fetcher.Fetch(context.Background(), "https://example.com/post")

		require.NoError(t, err)
		assert.Equal(t, "<html>content</html>", html)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "url=https://example.com/post")
		assert.Contains(t, output, "bytes=20")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return "", errors.New("network error")
			},
		}

		fetcher := artslog.NewLoggingFetcher(inner, logger)
		_, err := fetcher.Fetch(context.Background(), "https://example.com/post")

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "fetch")
		assert.Contains(t, output, "err=\"network error\"")
	})
}

func TestLoggingImageFetcher_FetchImage(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.ImageFetcher{
		FetchImageFn: func(ctx context.Context, url, referer string) ([]byte, string, error) {
			return []byte("img"), "image/jpeg", nil
		},
	}

	fetcher := artslog.NewLoggingImageFetcher(inner, logger)
	data, contentType, err := fetcher.FetchImage(context.Background(), "https://cdn.example.com/a.jpg", "https://example.com/post")

	require.NoError(t, err)
	assert.Equal(t, []byte("img"), data)
	assert.Equal(t, "image/jpeg", contentType)
	output := buf.String()
	assert.Contains(t, output, "fetch image")
	assert.Contains(t, output, "content_type=image/jpeg")
}

func TestLoggingRegistry_GetForURL(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	inner := &mock.ExtractorRegistry{
		GetForURLFn: func(rawURL string) artfetch.Extractor {
			return &mock.Extractor{NameFn: func() string { return "wechat" }}
		},
	}

	registry := artslog.NewLoggingRegistry(inner, logger)
	extractor := registry.GetForURL("https://mp.weixin.qq.com/s/abc")

	require.NotNil(t, extractor)
	output := buf.String()
	assert.Contains(t, output, "extractor selection")
	assert.Contains(t, output, "source=wechat")
	assert.Contains(t, output, "extractor=wechat")
}
