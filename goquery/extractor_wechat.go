package goquery

import (
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/artfetch/artfetch"
)

var _ artfetch.Extractor = (*WeChatExtractor)(nil)

// nicknameRe scrapes the account name from the inline script WeChat pages
// carry when no author meta tag is present.
var nicknameRe = regexp.MustCompile(`var\s+nickname\s*=\s*["']([^"']+)["']`)

// WeChatExtractor extracts articles from mp.weixin.qq.com pages. The
// rich-text body lives in #js_content; inline style attributes (color,
// centering) are kept as block style hints because the HTML renderer must
// reproduce them.
type WeChatExtractor struct{}

// NewWeChatExtractor creates a new WeChatExtractor.
func NewWeChatExtractor() *WeChatExtractor {
	return &WeChatExtractor{}
}

// Name returns the extractor's identifier.
func (e *WeChatExtractor) Name() string {
	return "wechat"
}

// Extract parses a WeChat article page into a document.
func (e *WeChatExtractor) Extract(rawHTML string, sourceURL string) (*artfetch.Document, error) {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, artfetch.Errorf(artfetch.EMALFORMED, "parsing wechat page: %v", err)
	}

	doc := &artfetch.Document{
		SourceURL: sourceURL,
		Source:    artfetch.SourceWeChat,
		FetchedAt: time.Now(),
	}

	title := metaContent(gq, `meta[property="og:title"]`)
	if title == "" {
		title = cleanText(gq.Find("h1.rich_media_title").First().Text())
	}
	if title == "" {
		title = cleanText(gq.Find("title").First().Text())
	}
	doc.Title = stripTitleSuffix(title, "微信公众号")

	doc.Author = pageAuthor(gq)
	if doc.Author == "" {
		if m := nicknameRe.FindStringSubmatch(rawHTML); m != nil {
			doc.Author = m[1]
		}
	}
	if doc.Author == "" {
		doc.Author = cleanText(gq.Find("#js_name").First().Text())
	}

	container := gq.Find("#js_content").First()
	if container.Length() == 0 {
		container = gq.Find(".rich_media_content").First()
	}
	if container.Length() == 0 {
		return nil, artfetch.Errorf(artfetch.ENOCONTENT, "no rich media container at %s", sourceURL)
	}

	// Drop tracking and script nodes but keep inline style attributes.
	container.Find(noiseSelector).Remove()
	container.Find(".qr_code_pc_outer, .reward_area, #js_pc_qr_code").Remove()

	ParseBlocks(container, doc)

	if err := finalize(doc); err != nil {
		return nil, err
	}
	return doc, nil
}
