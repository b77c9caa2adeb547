package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// metaContent returns the content attribute of the first matching meta tag.
func metaContent(gq *goquery.Document, selectors ...string) string {
	for _, sel := range selectors {
		if v, ok := gq.Find(sel).First().Attr("content"); ok {
			if v = strings.TrimSpace(v); v != "" {
				return v
			}
		}
	}
	return ""
}

// pageTitle runs the common title cascade: Open Graph, then meta titles,
// then the first h1, then the <title> element.
func pageTitle(gq *goquery.Document) string {
	if t := metaContent(gq,
		`meta[property="og:title"]`,
		`meta[name="title"]`,
		`meta[name="twitter:title"]`,
	); t != "" {
		return t
	}
	if t := cleanText(gq.Find("h1").First().Text()); t != "" {
		return t
	}
	return cleanText(gq.Find("title").First().Text())
}

// pageAuthor runs the common author cascade over meta tags.
func pageAuthor(gq *goquery.Document) string {
	return metaContent(gq,
		`meta[name="author"]`,
		`meta[property="article:author"]`,
	)
}

// stripTitleSuffix removes a trailing "| Site Name"-style suffix matching
// any of the given markers, e.g. "My Post - 微信公众号平台" -> "My Post".
func stripTitleSuffix(title string, markers ...string) string {
	for _, marker := range markers {
		re := regexp.MustCompile(`(?i)\s*[-_|–]\s*` + regexp.QuoteMeta(marker) + `.*$`)
		title = re.ReplaceAllString(title, "")
	}
	return strings.TrimSpace(title)
}
