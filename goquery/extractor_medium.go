package goquery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/artfetch/artfetch"
)

var _ artfetch.Extractor = (*MediumExtractor)(nil)

// MediumExtractor extracts stories from medium.com and its publication
// subdomains. The story body is the article element; clap counters, the
// paywall upsell and response sections are filtered out.
type MediumExtractor struct{}

// NewMediumExtractor creates a new MediumExtractor.
func NewMediumExtractor() *MediumExtractor {
	return &MediumExtractor{}
}

// Name returns the extractor's identifier.
func (e *MediumExtractor) Name() string {
	return "medium"
}

// Extract parses a Medium story into a document.
func (e *MediumExtractor) Extract(rawHTML string, sourceURL string) (*artfetch.Document, error) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, artfetch.Errorf(artfetch.EMALFORMED, "parsing medium page: %v", err)
	}

	doc := &artfetch.Document{
		SourceURL: sourceURL,
		Source:    artfetch.SourceMedium,
		FetchedAt: time.Now(),
	}

	doc.Title = stripTitleSuffix(pageTitle(gq), "Medium")

	doc.Author = pageAuthor(gq)
	if doc.Author == "" {
		doc.Author = cleanText(gq.Find(`a[data-testid="authorName"]`).First().Text())
	}

	container := gq.Find("article").First()
	if container.Length() == 0 {
		container = gq.Find("main").First()
	}
	if container.Length() == 0 {
		return nil, artfetch.Errorf(artfetch.ENOCONTENT, "no story body at %s", sourceURL)
	}

	container.Find(noiseSelector).Remove()
	container.Find(`[data-testid="audioPlayButton"], [data-testid="headerClapButton"], [data-testid="responsesSection"], .pw-multi-vote-count, .speechify-ignore, .paywall-upsell-container`).Remove()

	ParseBlocks(container, doc)

	if err := finalize(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
