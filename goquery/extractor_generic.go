package goquery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/artfetch/artfetch"
)

var _ artfetch.Extractor = (*GenericExtractor)(nil)

// containerSelectors are common article body markers, tried in order.
var containerSelectors = []string{
	"article",
	"main",
	"div.post-content",
	"div.article-content",
	"div.entry-content",
	"#content",
	"#article",
	"div.content",
}

// GenericExtractor handles unrecognized sites with an ordered cascade of
// heuristics: common article-container markers, then a text-density scan
// over the whole page, then any configured fallback engines. The cascade
// stops at the first stage that yields enough text; ENOCONTENT is returned
// only when every stage is exhausted.
type GenericExtractor struct {
	// MinTextLen is the minimum rune count for a stage's result to count
	// as non-trivial. Tuned empirically, not a structural constant.
	MinTextLen int

	// MinDensity is the minimum text-to-markup ratio a density candidate
	// must reach.
	MinDensity float64

	// Fallbacks are lower-level extraction engines tried after the
	// selector and density stages, in order.
	Fallbacks []artfetch.ContentExtractor
}

// Default heuristic thresholds.
const (
	DefaultMinTextLen = 150
	DefaultMinDensity = 0.2
)

// NewGenericExtractor creates a GenericExtractor with default thresholds
// and the given fallback engines.
func NewGenericExtractor(fallbacks ...artfetch.ContentExtractor) *GenericExtractor {
	return &GenericExtractor{
		MinTextLen: DefaultMinTextLen,
		MinDensity: DefaultMinDensity,
		Fallbacks:  fallbacks,
	}
}

// Name returns the extractor's identifier.
func (e *GenericExtractor) Name() string {
	return "generic"
}

// Extract runs the heuristic cascade over an arbitrary page.
func (e *GenericExtractor) Extract(rawHTML string, sourceURL string) (*artfetch.Document, error) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, artfetch.Errorf(artfetch.EMALFORMED, "parsing page: %v", err)
	}

	doc := &artfetch.Document{
		SourceURL: sourceURL,
		Source:    artfetch.SourceGeneric,
		FetchedAt: time.Now(),
		Title:     pageTitle(gq),
		Author:    genericAuthor(gq),
	}

	gq.Find(noiseSelector).Remove()

	// Stage 1: known article-container markers.
	if container := e.findContainer(gq); container != nil {
		ParseBlocks(container, doc)
		if err := finalize(doc); err == nil {
			return doc, nil
		}
		doc.Blocks, doc.Images = nil, nil
	}

	// Stage 2: highest text density wins.
	if container := e.densestCandidate(gq); container != nil {
		ParseBlocks(container, doc)
		if err := finalize(doc); err == nil {
			return doc, nil
		}
		doc.Blocks, doc.Images = nil, nil
	}

	// Stage 3: fallback engines over the raw markup.
	for _, engine := range e.Fallbacks {
		result, err := engine.Extract(rawHTML)
		if err != nil || strings.TrimSpace(result.ContentHTML) == "" {
			continue
		}
		if err := ParseBlocksHTML(result.ContentHTML, doc); err != nil {
			continue
		}
		if e.contentLength(doc) < e.MinTextLen {
			doc.Blocks, doc.Images = nil, nil
			continue
		}
		if doc.Title == "" {
			doc.Title = result.Title
		}
		if doc.Author == "" {
			doc.Author = result.Author
		}
		if err := finalize(doc); err == nil {
			return doc, nil
		}
		doc.Blocks, doc.Images = nil, nil
	}

	return nil, artfetch.Errorf(artfetch.ENOCONTENT, "no content found at %s", sourceURL)
}

// findContainer returns the first known container with enough text.
func (e *GenericExtractor) findContainer(gq *goquery.Document) *goquery.Selection {
	for _, sel := range containerSelectors {
		s := gq.Find(sel).First()
		if s.Length() > 0 && textLength(s) >= e.MinTextLen {
			return s
		}
	}
	return nil
}

// densestCandidate scans div and section elements and returns the one with
// the best text-density score, or nil when nothing clears the thresholds.
// Score is textLen * (textLen / htmlLen): long coherent text beats
// markup-heavy widget soup.
func (e *GenericExtractor) densestCandidate(gq *goquery.Document) *goquery.Selection {
	var best *goquery.Selection
	var bestScore float64

	gq.Find("div, section, td").Each(func(_ int, s *goquery.Selection) {
		textLen := textLength(s)
		if textLen < e.MinTextLen {
			return
		}
		inner, err := s.Html()
		if err != nil || len(inner) == 0 {
			return
		}
		density := float64(textLen) / float64(len([]rune(inner)))
		if density < e.MinDensity {
			return
		}
		score := float64(textLen) * density
		if score > bestScore {
			best, bestScore = s, score
		}
	})

	return best
}

// contentLength totals the text carried by a document's blocks.
func (e *GenericExtractor) contentLength(doc *artfetch.Document) int {
	n := 0
	for _, b := range doc.Blocks {
		n += len([]rune(b.Text))
		for _, item := range b.Items {
			n += len([]rune(item))
		}
	}
	return n
}

// genericAuthor tries meta tags and then a visible author byline.
func genericAuthor(gq *goquery.Document) string {
	if a := pageAuthor(gq); a != "" {
		return a
	}
	return cleanText(gq.Find(`span[class*="author"]`).First().Text())
}
