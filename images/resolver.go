// Package images resolves and downloads a document's images. URLs are
// normalized to absolute form, downloaded once each with bounded
// concurrency, stored under an images/ subdirectory, and the document's
// blocks are rewritten to the local paths.
package images

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/artfetch/artfetch"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel downloads per document; small on
// purpose so one article doesn't hammer a CDN.
const DefaultConcurrency = 4

// LocalDirName is the subdirectory under the output root that holds all
// downloaded images for a run.
const LocalDirName = "images"

// Ensure Resolver implements artfetch.ImageResolver at compile time.
var _ artfetch.ImageResolver = (*Resolver)(nil)

// Resolver downloads a document's images and localizes its refs.
type Resolver struct {
	fetcher     artfetch.ImageFetcher
	dir         string
	limiter     artfetch.DomainLimiter
	concurrency int
	now         func() time.Time
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithConcurrency sets the parallel download limit.
func WithConcurrency(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.concurrency = n
		}
	}
}

// WithLimiter sets a per-domain rate limiter for downloads.
func WithLimiter(l artfetch.DomainLimiter) Option {
	return func(r *Resolver) {
		r.limiter = l
	}
}

// WithClock overrides the time source used for local filenames.
func WithClock(now func() time.Time) Option {
	return func(r *Resolver) {
		r.now = now
	}
}

// NewResolver creates a Resolver writing image files into dir.
func NewResolver(fetcher artfetch.ImageFetcher, dir string, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher:     fetcher,
		dir:         dir,
		concurrency: DefaultConcurrency,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// download is one dispatched fetch. The filename is fixed at discovery
// time so completion order cannot influence naming.
type download struct {
	refs       []*artfetch.ImageRef // all refs sharing the resolved URL
	url        string
	name       string
	defaultExt bool // extension fell back to .jpg; response type may refine
}

// Resolve normalizes every unresolved ref in discovery order, downloads
// each distinct resolved URL at most once, and rewrites the document's
// image blocks to local paths. Failed downloads leave the block's original
// URL in place; they are never fatal. Calling Resolve again skips every
// previously attempted ref.
func (r *Resolver) Resolve(ctx context.Context, doc *artfetch.Document) (artfetch.ResolveStats, error) {
	var stats artfetch.ResolveStats

	now := r.now()
	byURL := make(map[string]*download)
	var downloads []*download

	// Naming pass runs sequentially over discovery order.
	for _, ref := range doc.Images {
		if ref.State != artfetch.ImageUnresolved {
			stats.Skipped++
			continue
		}

		resolved, err := artfetch.NormalizeImageURL(ref.OriginalURL, doc.SourceURL)
		if err != nil {
			ref.State = artfetch.ImageFailed
			stats.Failed++
			continue
		}
		ref.ResolvedURL = resolved

		// Two originals can normalize to the same URL; the first ref's
		// download serves both.
		if d, ok := byURL[resolved]; ok {
			d.refs = append(d.refs, ref)
			continue
		}

		ext := artfetch.ImageExtension(resolved)
		d := &download{
			refs:       []*artfetch.ImageRef{ref},
			url:        resolved,
			name:       artfetch.LocalImageName(now, ref.Index, ext),
			defaultExt: ext == ".jpg" && !strings.Contains(strings.ToLower(resolved), ".jpg"),
		}
		byURL[resolved] = d
		downloads = append(downloads, d)
	}

	if len(downloads) > 0 {
		if err := os.MkdirAll(r.dir, 0755); err != nil {
			return stats, err
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(r.concurrency)

		for _, d := range downloads {
			g.Go(func() error {
				r.fetch(gctx, d, doc.SourceURL)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return stats, err
		}
	}

	for _, d := range downloads {
		for _, ref := range d.refs {
			if ref.State == artfetch.ImageLocal {
				stats.Downloaded++
			} else {
				stats.Failed++
			}
		}
	}

	rewriteBlocks(doc)
	return stats, nil
}

// fetch downloads one image and marks its refs. Download failures degrade
// the refs to ImageFailed; only filesystem trouble would matter, and even
// that just fails the ref.
func (r *Resolver) fetch(ctx context.Context, d *download, referer string) {
	if r.limiter != nil {
		if u, err := url.Parse(d.url); err == nil {
			if err := r.limiter.Wait(ctx, u.Host); err != nil {
				markFailed(d.refs)
				return
			}
		}
	}

	data, contentType, err := r.fetcher.FetchImage(ctx, d.url, referer)
	if err != nil {
		markFailed(d.refs)
		return
	}

	name := d.name
	if d.defaultExt {
		if ext := artfetch.ExtensionForContentType(contentType); ext != "" && ext != ".jpg" {
			name = strings.TrimSuffix(name, ".jpg") + ext
		}
	}

	if err := os.WriteFile(filepath.Join(r.dir, name), data, 0644); err != nil {
		markFailed(d.refs)
		return
	}

	local := LocalDirName + "/" + name
	for _, ref := range d.refs {
		ref.LocalPath = local
		ref.State = artfetch.ImageLocal
	}
}

func markFailed(refs []*artfetch.ImageRef) {
	for _, ref := range refs {
		ref.State = artfetch.ImageFailed
	}
}

// rewriteBlocks is the one-time in-place rewrite of image references to
// local paths. Blocks whose ref failed keep their original URL.
func rewriteBlocks(doc *artfetch.Document) {
	for i := range doc.Blocks {
		b := &doc.Blocks[i]
		if b.Kind == artfetch.BlockImage {
			if ref := doc.ImageByURL(b.URL); ref != nil && ref.State == artfetch.ImageLocal {
				b.URL = ref.LocalPath
			}
			continue
		}
		if b.HTML == "" {
			continue
		}
		// Inline references inside rich block HTML follow the same mapping.
		for _, ref := range doc.Images {
			if ref.State == artfetch.ImageLocal {
				b.HTML = strings.ReplaceAll(b.HTML, ref.OriginalURL, ref.LocalPath)
			}
		}
	}
}
