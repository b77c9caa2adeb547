package artfetch

import "context"

// ResolveStats summarizes one image resolution pass over a document.
type ResolveStats struct {
	Downloaded int
	Failed     int
	Skipped    int
}

// ImageResolver normalizes, downloads and localizes a document's images.
// Resolution is best-effort: a failed download degrades that ref to its
// original remote URL and is never fatal to the document. Resolving a
// document twice is a no-op for refs already attempted.
type ImageResolver interface {
	Resolve(ctx context.Context, doc *Document) (ResolveStats, error)
}

// DomainLimiter provides per-domain rate limiting for downloads.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
