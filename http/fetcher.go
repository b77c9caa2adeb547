// Package http fetches article pages and images over plain HTTP with
// browser-like request headers. It implements artfetch.Fetcher and
// artfetch.ImageFetcher.
package http

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/artfetch/artfetch"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent mimics a desktop Chrome; several platforms serve reduced
// or empty markup to unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Ensure Fetcher implements both fetch interfaces at compile time.
var (
	_ artfetch.Fetcher      = (*Fetcher)(nil)
	_ artfetch.ImageFetcher = (*Fetcher)(nil)
)

// Fetcher retrieves pages and images using net/http. It does not execute
// JavaScript; client-side-only pages are out of scope.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the page at url and returns its markup decoded to UTF-8.
// The declared or detected charset is honored, defaulting to UTF-8.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", artfetch.Errorf(artfetch.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fetchError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", artfetch.Errorf(artfetch.EHTTPSTATUS, "HTTP %d for %s", resp.StatusCode, url)
	}

	// A charset the detector cannot handle is not a network failure; fall
	// back to the raw bytes. Genuine read errors still surface below.
	var reader io.Reader = resp.Body
	if decoded, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type")); err == nil {
		reader = decoded
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return "", fetchError(url, err)
	}

	return string(body), nil
}

// FetchImage retrieves image bytes. The referer should be the article URL;
// image CDNs with hotlink protection check it.
func (f *Fetcher) FetchImage(ctx context.Context, url string, referer string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", artfetch.Errorf(artfetch.EINVALID, "invalid image URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "image/avif,image/webp,image/apng,image/svg+xml,image/*,*/*;q=0.8")
	if referer != "" {
		req.Header.Set("Referer", referer)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, "", fetchError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", artfetch.Errorf(artfetch.EHTTPSTATUS, "HTTP %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fetchError(url, err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// Close releases resources. No-op for the plain HTTP client.
func (f *Fetcher) Close() error {
	return nil
}

// fetchError maps transport errors onto the artfetch error taxonomy.
func fetchError(url string, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout(),
		strings.Contains(err.Error(), "Client.Timeout"):
		return artfetch.Errorf(artfetch.ETIMEOUT, "timeout fetching %s", url)
	default:
		return artfetch.Errorf(artfetch.ECONNECTION, "fetching %s: %v", url, err)
	}
}
