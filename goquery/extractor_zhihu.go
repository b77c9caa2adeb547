package goquery

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/artfetch/artfetch"
)

var _ artfetch.Extractor = (*ZhihuExtractor)(nil)

// ZhihuExtractor extracts column articles from zhuanlan.zhihu.com.
// Recommendation widgets, ad cards and the comment section are noise.
type ZhihuExtractor struct{}

// NewZhihuExtractor creates a new ZhihuExtractor.
func NewZhihuExtractor() *ZhihuExtractor {
	return &ZhihuExtractor{}
}

// Name returns the extractor's identifier.
func (e *ZhihuExtractor) Name() string {
	return "zhihu"
}

// Extract parses a Zhihu column article into a document.
func (e *ZhihuExtractor) Extract(rawHTML string, sourceURL string) (*artfetch.Document, error) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, artfetch.Errorf(artfetch.EMALFORMED, "parsing zhihu page: %v", err)
	}

	doc := &artfetch.Document{
		SourceURL: sourceURL,
		Source:    artfetch.SourceZhihu,
		FetchedAt: time.Now(),
	}

	doc.Title = cleanText(gq.Find("h1.Post-Title").First().Text())
	if doc.Title == "" {
		doc.Title = stripTitleSuffix(pageTitle(gq), "知乎")
	}

	doc.Author = cleanText(gq.Find(".AuthorInfo-name").First().Text())
	if doc.Author == "" {
		doc.Author = pageAuthor(gq)
	}

	container := gq.Find(".Post-RichTextContainer").First()
	if container.Length() == 0 {
		container = gq.Find(".RichText").First()
	}
	if container.Length() == 0 {
		container = gq.Find("article").First()
	}
	if container.Length() == 0 {
		return nil, artfetch.Errorf(artfetch.ENOCONTENT, "no post container at %s", sourceURL)
	}

	container.Find(noiseSelector).Remove()
	container.Find(".RichText-ADLinkCardContainer, .Recommendations, .Comments-container, .CornerButtons, .LinkCard").Remove()

	ParseBlocks(container, doc)

	if err := finalize(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
