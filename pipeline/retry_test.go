package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/artfetch/artfetch"
	"github.com/artfetch/artfetch/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	noDelays := []time.Duration{0, 0, 0}

	t.Run("retries transient failures until success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			if calls < 3 {
				return "", artfetch.Errorf(artfetch.ETIMEOUT, "request timed out")
			}
			return "<html></html>", nil
		}

		html, err := pipeline.FetchWithRetryDelays(context.Background(), "https://example.com/p", fetch, noDelays)
		require.NoError(t, err)
		assert.Equal(t, "<html></html>", html)
		assert.Equal(t, 3, calls)
	})

	t.Run("gives up after the last delay", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", artfetch.Errorf(artfetch.ECONNECTION, "connection refused")
		}

		_, err := pipeline.FetchWithRetryDelays(context.Background(), "https://example.com/p", fetch, noDelays)
		require.Error(t, err)
		assert.Equal(t, artfetch.ECONNECTION, artfetch.ErrorCode(err))
		assert.Equal(t, 4, calls)
	})

	t.Run("does not retry an HTTP status failure", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			return "", artfetch.Errorf(artfetch.EHTTPSTATUS, "HTTP 404")
		}

		_, err := pipeline.FetchWithRetryDelays(context.Background(), "https://example.com/p", fetch, noDelays)
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancellation cuts the backoff short", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		fetch := func(ctx context.Context, url string) (string, error) {
			calls++
			cancel()
			return "", artfetch.Errorf(artfetch.ETIMEOUT, "request timed out")
		}

		_, err := pipeline.FetchWithRetryDelays(ctx, "https://example.com/p", fetch, []time.Duration{time.Hour})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
