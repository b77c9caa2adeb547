// Package pipeline orchestrates article archival end to end: fetch,
// extract, resolve images, render and write, for one URL or a batch.
package pipeline

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/artfetch/artfetch"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds parallel article processing in a batch.
const DefaultConcurrency = 3

// Pipeline coordinates the archival of articles.
type Pipeline struct {
	Fetcher    artfetch.Fetcher
	Extractors artfetch.ExtractorRegistry
	Images     artfetch.ImageResolver
	Renderers  []artfetch.Renderer
	Writer     artfetch.DocumentWriter

	// SkipImages leaves remote image URLs in place instead of downloading.
	SkipImages  bool
	Concurrency int
	RetryDelays []time.Duration
	Now         func() time.Time
}

// Outcome is the result of archiving one URL. A non-nil Err means the URL
// failed; failures never abort the rest of a batch.
type Outcome struct {
	URL    string
	Title  string
	Source artfetch.Source
	Paths  []string
	Stats  artfetch.ResolveStats
	Err    error
}

// Result aggregates a batch run.
type Result struct {
	Saved            int
	Failed           int
	Bytes            int
	ImagesDownloaded int
	ImagesFailed     int
}

// ProgressEvent reports progress during a batch run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting batch progress.
type ProgressFunc func(event ProgressEvent)

// Process archives a single URL through every configured renderer. The
// returned outcome always carries the URL; its Err mirrors the returned
// error.
func (p *Pipeline) Process(ctx context.Context, rawURL string) (*Outcome, error) {
	outcome := &Outcome{
		URL:    rawURL,
		Source: artfetch.ClassifySource(rawURL),
	}

	delays := p.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	html, err := FetchWithRetryDelays(ctx, rawURL, p.Fetcher.Fetch, delays)
	if err != nil {
		outcome.Err = err
		return outcome, err
	}

	extractor := p.Extractors.GetForURL(rawURL)
	if extractor == nil {
		err := artfetch.Errorf(artfetch.EINTERNAL, "no extractor for %s", rawURL)
		outcome.Err = err
		return outcome, err
	}

	doc, err := extractor.Extract(html, rawURL)
	if err != nil {
		outcome.Err = err
		return outcome, err
	}
	if doc.FetchedAt.IsZero() {
		doc.FetchedAt = p.now()
	}
	outcome.Title = doc.Title

	if !p.SkipImages && p.Images != nil {
		stats, err := p.Images.Resolve(ctx, doc)
		if err != nil {
			outcome.Err = err
			return outcome, err
		}
		outcome.Stats = stats
	} else {
		normalizeImageURLs(doc)
	}

	for _, renderer := range p.Renderers {
		data, err := renderer.Render(doc)
		if err != nil {
			outcome.Err = err
			return outcome, err
		}
		path, err := p.Writer.WriteDocument(doc, renderer.Format(), data)
		if err != nil {
			outcome.Err = err
			return outcome, err
		}
		outcome.Paths = append(outcome.Paths, path)
	}

	return outcome, nil
}

// Batch archives every URL with bounded concurrency and returns one
// outcome per URL in input order. Per-URL failures are recorded, not
// fatal; Batch only returns an error when the context is canceled.
func (p *Pipeline) Batch(ctx context.Context, urls []string, progress ProgressFunc) ([]*Outcome, error) {
	outcomes := make([]*Outcome, len(urls))
	total := len(urls)

	if progress != nil {
		progress(ProgressEvent{Type: ProgressStarted, Total: total})
	}

	concurrency := p.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	var completed atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, rawURL := range urls {
		g.Go(func() error {
			outcome, err := p.Process(gctx, rawURL)
			outcomes[i] = outcome

			done := int(completed.Add(1))
			if progress != nil {
				event := ProgressEvent{
					Type:      ProgressCompleted,
					Completed: done,
					Total:     total,
					URL:       rawURL,
				}
				if err != nil {
					event.Type = ProgressFailed
					event.Error = err
				}
				progress(event)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return outcomes, err
	}

	if progress != nil {
		progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})
	}

	if err := ctx.Err(); err != nil {
		return outcomes, err
	}
	return outcomes, nil
}

// Summarize aggregates batch outcomes for reporting.
func Summarize(outcomes []*Outcome) *Result {
	result := &Result{}
	for _, o := range outcomes {
		if o == nil {
			continue
		}
		if o.Err != nil {
			result.Failed++
			continue
		}
		result.Saved++
		result.ImagesDownloaded += o.Stats.Downloaded
		result.ImagesFailed += o.Stats.Failed
	}
	return result
}

// normalizeImageURLs rewrites image references to absolute URLs without
// downloading anything. Relative and protocol-relative URLs would be dead
// links in a saved artifact, so they are absolutized even when downloads
// are skipped.
func normalizeImageURLs(doc *artfetch.Document) {
	for _, ref := range doc.Images {
		resolved, err := artfetch.NormalizeImageURL(ref.OriginalURL, doc.SourceURL)
		if err != nil || resolved == ref.OriginalURL {
			continue
		}
		ref.ResolvedURL = resolved

		for i := range doc.Blocks {
			b := &doc.Blocks[i]
			if b.Kind == artfetch.BlockImage && b.URL == ref.OriginalURL {
				b.URL = resolved
			}
			if b.HTML != "" {
				b.HTML = strings.ReplaceAll(b.HTML, ref.OriginalURL, resolved)
			}
		}
	}
}

func (p *Pipeline) now() time.Time {
	if p.Now != nil {
		return p.Now()
	}
	return time.Now()
}
