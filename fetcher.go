package artfetch

import "context"

// Fetcher retrieves article markup from URLs. Implementations send
// browser-like headers and decode the response charset to UTF-8.
// No retries happen at this layer; retry policy belongs to the caller.
type Fetcher interface {
	// Fetch returns the page markup decoded to UTF-8. Failures carry
	// ETIMEOUT, ECONNECTION or EHTTPSTATUS codes.
	Fetch(ctx context.Context, url string) (string, error)

	// Close releases client resources.
	Close() error
}

// ImageFetcher retrieves image bytes. The referer is set to the article URL
// because some CDNs (e.g. WeChat's mmbiz.qpic.cn) reject requests without a
// matching Referer.
type ImageFetcher interface {
	// FetchImage returns the image bytes and the response content type.
	FetchImage(ctx context.Context, url string, referer string) (data []byte, contentType string, err error)
}
