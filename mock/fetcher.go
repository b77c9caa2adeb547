package mock

import (
	"context"

	"github.com/artfetch/artfetch"
)

var _ artfetch.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of artfetch.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ artfetch.ImageFetcher = (*ImageFetcher)(nil)

// ImageFetcher is a mock implementation of artfetch.ImageFetcher.
type ImageFetcher struct {
	FetchImageFn func(ctx context.Context, url string, referer string) ([]byte, string, error)
}

func (f *ImageFetcher) FetchImage(ctx context.Context, url string, referer string) ([]byte, string, error) {
	return f.FetchImageFn(ctx, url, referer)
}
