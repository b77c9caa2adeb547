package goquery

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/artfetch/artfetch"
)

var _ artfetch.Extractor = (*NotionExtractor)(nil)

// authorNameRe scrapes the author out of the embedded page state JSON.
var authorNameRe = regexp.MustCompile(`"authorName"\s*:\s*"([^"]*)"`)

// NotionExtractor extracts articles from notion.site and notion.com pages.
// Notion serves images through its /image?url=<encoded> proxy; the proxy is
// unwrapped here so the resolver downloads the true origin image.
type NotionExtractor struct{}

// NewNotionExtractor creates a new NotionExtractor.
func NewNotionExtractor() *NotionExtractor {
	return &NotionExtractor{}
}

// Name returns the extractor's identifier.
func (e *NotionExtractor) Name() string {
	return "notion"
}

// Extract parses a Notion page into a document.
func (e *NotionExtractor) Extract(rawHTML string, sourceURL string) (*artfetch.Document, error) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, artfetch.Errorf(artfetch.EMALFORMED, "parsing notion page: %v", err)
	}

	doc := &artfetch.Document{
		SourceURL: sourceURL,
		Source:    artfetch.SourceNotion,
		FetchedAt: time.Now(),
	}

	doc.Title = stripTitleSuffix(pageTitle(gq), "Notion")

	doc.Author = pageAuthor(gq)
	if doc.Author == "" {
		if m := authorNameRe.FindStringSubmatch(rawHTML); m != nil {
			doc.Author = m[1]
		}
	}

	container := gq.Find("article").First()
	if container.Length() == 0 {
		container = gq.Find(".notion-page-content").First()
	}
	if container.Length() == 0 {
		container = gq.Find("main").First()
	}
	if container.Length() == 0 {
		return nil, artfetch.Errorf(artfetch.ENOCONTENT, "no page content at %s", sourceURL)
	}

	container.Find(noiseSelector).Remove()
	ParseBlocks(container, doc)

	// Recover origin image URLs from proxy links before resolution.
	remapImages(doc, func(raw string) string {
		return unproxyNotionImage(raw, sourceURL)
	})

	if err := finalize(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// unproxyNotionImage decodes the url query parameter of Notion's image
// proxy (/image?url=... and /_next/image?url=...). Relative proxy paths are
// made absolute against the page URL first. Non-proxy URLs pass through.
func unproxyNotionImage(raw string, pageURL string) string {
	candidate := raw
	if strings.HasPrefix(candidate, "/") {
		base, err := url.Parse(pageURL)
		if err != nil {
			return raw
		}
		candidate = base.Scheme + "://" + base.Host + candidate
	}
	if inner := artfetch.UnwrapProxyURL(candidate); inner != "" {
		return inner
	}
	return raw
}
