// Package goquery implements the per-source content extractors on top of
// CSS-selector DOM traversal. Each extractor locates the platform's article
// container and feeds it through a shared walker that normalizes markup into
// the artfetch block model.
package goquery

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/artfetch/artfetch"
	"github.com/cespare/xxhash/v2"
	"golang.org/x/net/html"
)

// noiseSelector matches elements that never carry article content.
const noiseSelector = "script, style, noscript, iframe, nav, header, footer, aside"

// lazySrcAttrs are image source attributes checked before plain src. Lazy
// attributes more often hold the true URL in modern markup.
var lazySrcAttrs = []string{"data-src", "data-original", "data-lazy-src"}

// ParseBlocks walks the container selection in document order and appends
// normalized content blocks to doc, registering every discovered image.
func ParseBlocks(container *goquery.Selection, doc *artfetch.Document) {
	container.Contents().Each(func(_ int, s *goquery.Selection) {
		if len(s.Nodes) == 0 {
			return
		}
		node := s.Nodes[0]
		switch node.Type {
		case html.TextNode:
			if text := cleanText(node.Data); text != "" {
				doc.Blocks = append(doc.Blocks, artfetch.Block{
					Kind: artfetch.BlockParagraph,
					Text: text,
					HTML: text,
				})
			}
		case html.ElementNode:
			parseElement(s, node.Data, doc)
		}
	})
}

// ParseBlocksHTML parses an HTML fragment (or full page) and appends its
// content blocks to doc. Used for content produced by fallback engines.
func ParseBlocksHTML(fragment string, doc *artfetch.Document) error {
	gq, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return artfetch.Errorf(artfetch.EMALFORMED, "parsing content fragment: %v", err)
	}
	body := gq.Find("body")
	body.Find(noiseSelector).Remove()
	ParseBlocks(body, doc)
	return nil
}

func parseElement(s *goquery.Selection, tag string, doc *artfetch.Document) {
	switch tag {
	case "script", "style", "noscript", "iframe", "nav", "header", "footer", "aside", "form", "button", "svg":
		return

	case "h1", "h2", "h3", "h4", "h5", "h6":
		text := cleanText(s.Text())
		if text == "" {
			return
		}
		inner, _ := s.Html()
		doc.Blocks = append(doc.Blocks, artfetch.Block{
			Kind:  artfetch.BlockHeading,
			Level: int(tag[1] - '0'),
			Text:  text,
			HTML:  strings.TrimSpace(inner),
			Style: styleHints(s),
		})

	case "p":
		emitImages(s, doc)
		s.Find("img").Remove()
		text := cleanText(s.Text())
		if text == "" {
			return
		}
		inner, _ := s.Html()
		doc.Blocks = append(doc.Blocks, artfetch.Block{
			Kind:  artfetch.BlockParagraph,
			Text:  text,
			HTML:  strings.TrimSpace(inner),
			Style: styleHints(s),
		})

	case "img":
		emitImage(s, "", doc)

	case "figure":
		caption := cleanText(s.Find("figcaption").Text())
		emitImagesWithAlt(s, caption, doc)

	case "blockquote":
		emitImages(s, doc)
		s.Find("img").Remove()
		text := cleanText(s.Text())
		if text == "" {
			return
		}
		inner, _ := s.Html()
		doc.Blocks = append(doc.Blocks, artfetch.Block{
			Kind:  artfetch.BlockQuote,
			Text:  text,
			HTML:  strings.TrimSpace(inner),
			Style: styleHints(s),
		})

	case "pre":
		code := s.Text()
		if strings.TrimSpace(code) == "" {
			return
		}
		doc.Blocks = append(doc.Blocks, artfetch.Block{
			Kind: artfetch.BlockCode,
			Text: strings.Trim(code, "\n"),
		})

	case "ul", "ol":
		items := listItems(s)
		if len(items) == 0 {
			return
		}
		doc.Blocks = append(doc.Blocks, artfetch.Block{
			Kind:    artfetch.BlockList,
			Items:   items,
			Ordered: tag == "ol",
		})

	case "table":
		rows := tableRows(s)
		if len(rows) == 0 {
			return
		}
		doc.Blocks = append(doc.Blocks, artfetch.Block{
			Kind: artfetch.BlockTable,
			Rows: rows,
		})

	case "hr":
		doc.Blocks = append(doc.Blocks, artfetch.Block{Kind: artfetch.BlockDivider})

	case "br":
		return

	case "div", "section", "article", "main", "body", "span":
		if hasBlockChildren(s) {
			ParseBlocks(s, doc)
			return
		}
		emitImages(s, doc)
		s.Find("img").Remove()
		text := cleanText(s.Text())
		if text == "" {
			return
		}
		inner, _ := s.Html()
		doc.Blocks = append(doc.Blocks, artfetch.Block{
			Kind:  artfetch.BlockParagraph,
			Text:  text,
			HTML:  strings.TrimSpace(inner),
			Style: styleHints(s),
		})

	default:
		// Inline or unknown element at block level: keep its text.
		emitImages(s, doc)
		if text := cleanText(s.Text()); text != "" {
			inner, _ := s.Html()
			doc.Blocks = append(doc.Blocks, artfetch.Block{
				Kind: artfetch.BlockParagraph,
				Text: text,
				HTML: strings.TrimSpace(inner),
			})
		}
	}
}

// imageSrc picks the best source attribute of an img element.
func imageSrc(s *goquery.Selection) string {
	for _, attr := range lazySrcAttrs {
		if v, ok := s.Attr(attr); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	v, _ := s.Attr("src")
	return strings.TrimSpace(v)
}

func emitImage(s *goquery.Selection, altFallback string, doc *artfetch.Document) {
	src := imageSrc(s)
	if src == "" || strings.HasPrefix(src, "data:") {
		return
	}
	alt, _ := s.Attr("alt")
	alt = cleanText(alt)
	if alt == "" {
		alt = altFallback
	}
	doc.RegisterImage(src)
	doc.Blocks = append(doc.Blocks, artfetch.Block{
		Kind:  artfetch.BlockImage,
		URL:   src,
		Alt:   alt,
		Style: styleHints(s),
	})
}

func emitImages(s *goquery.Selection, doc *artfetch.Document) {
	emitImagesWithAlt(s, "", doc)
}

func emitImagesWithAlt(s *goquery.Selection, altFallback string, doc *artfetch.Document) {
	s.Find("img").Each(func(_ int, img *goquery.Selection) {
		emitImage(img, altFallback, doc)
	})
}

func listItems(s *goquery.Selection) []string {
	var items []string
	s.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		if text := cleanText(li.Text()); text != "" {
			items = append(items, text)
		}
	})
	return items
}

// tableRows flattens a table into rows of cell text, preserving shape.
func tableRows(s *goquery.Selection) [][]string {
	var rows [][]string
	s.Find("tr").Each(func(_ int, tr *goquery.Selection) {
		var row []string
		tr.Find("th, td").Each(func(_ int, cell *goquery.Selection) {
			row = append(row, cleanText(cell.Text()))
		})
		if len(row) > 0 {
			rows = append(rows, row)
		}
	})
	return rows
}

// hasBlockChildren reports whether the selection directly contains
// block-level elements and should be recursed into rather than flattened.
func hasBlockChildren(s *goquery.Selection) bool {
	return s.ChildrenFiltered("p, h1, h2, h3, h4, h5, h6, ul, ol, table, blockquote, pre, figure, hr, div, section, article").Length() > 0
}

// styleHints captures the inline style attributes the HTML renderer must
// reproduce: text color and center alignment.
func styleHints(s *goquery.Selection) *artfetch.Style {
	style := artfetch.Style{}
	if align, ok := s.Attr("align"); ok && strings.EqualFold(strings.TrimSpace(align), "center") {
		style.Centered = true
	}
	if raw, ok := s.Attr("style"); ok {
		for _, decl := range strings.Split(raw, ";") {
			name, value, ok := strings.Cut(decl, ":")
			if !ok {
				continue
			}
			name = strings.ToLower(strings.TrimSpace(name))
			value = strings.TrimSpace(value)
			switch name {
			case "color":
				style.Color = value
			case "text-align":
				if strings.EqualFold(value, "center") {
					style.Centered = true
				}
			}
		}
	}
	if style == (artfetch.Style{}) {
		return nil
	}
	return &style
}

// cleanText collapses whitespace and strips zero-width characters left by
// rich-text editors. Entities are already decoded by the HTML parser.
func cleanText(s string) string {
	s = strings.NewReplacer("\u00a0", " ", "\u200b", "", "\ufeff", "").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// remapImages rewrites every image block URL through fn and rebuilds the
// document's ref list in block order, preserving dedup.
func remapImages(doc *artfetch.Document, fn func(string) string) {
	doc.Images = nil
	for i := range doc.Blocks {
		if doc.Blocks[i].Kind != artfetch.BlockImage {
			continue
		}
		doc.Blocks[i].URL = fn(doc.Blocks[i].URL)
		doc.RegisterImage(doc.Blocks[i].URL)
	}
}

// finalize applies the shared post-extraction invariants: a nameable title,
// at least one content block, and a stable content hash.
func finalize(doc *artfetch.Document) error {
	if len(doc.Blocks) == 0 {
		return artfetch.Errorf(artfetch.ENOCONTENT, "no content found at %s", doc.SourceURL)
	}
	if doc.Title == "" {
		doc.Title = artfetch.FallbackTitle(doc.FetchedAt)
	}
	doc.ContentHash = hashBlocks(doc.Blocks)
	return nil
}

// hashBlocks computes a stable hash over block text and image URLs.
func hashBlocks(blocks []artfetch.Block) string {
	h := xxhash.New()
	for _, b := range blocks {
		_, _ = h.WriteString(string(b.Kind))
		_, _ = h.WriteString(b.Text)
		_, _ = h.WriteString(b.URL)
		for _, row := range b.Rows {
			_, _ = h.WriteString(strings.Join(row, "\x1f"))
		}
		_, _ = h.WriteString(strings.Join(b.Items, "\x1f"))
		_, _ = h.WriteString("\x1e")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// textLength is the total rune count of textual content in a selection
// after noise removal, used by heuristic thresholds.
func textLength(s *goquery.Selection) int {
	return len([]rune(cleanText(s.Text())))
}
