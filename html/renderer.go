// Package html renders documents as standalone styled HTML pages.
package html

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"strings"

	"github.com/artfetch/artfetch"
)

// Ensure Renderer implements artfetch.Renderer at compile time.
var _ artfetch.Renderer = (*Renderer)(nil)

const page = `<!DOCTYPE html>
<html lang="zh-CN">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body { max-width: 740px; margin: 0 auto; padding: 24px 16px;
  font-family: -apple-system, "Segoe UI", "Helvetica Neue", "PingFang SC",
  "Microsoft YaHei", sans-serif; line-height: 1.75; color: #333; }
h1 { font-size: 1.7em; line-height: 1.3; }
.meta { color: #888; font-size: 0.9em; border-bottom: 1px solid #eee;
  padding-bottom: 12px; margin-bottom: 24px; }
.meta a { color: #888; }
img { max-width: 100%; height: auto; display: block; margin: 16px auto; }
blockquote { margin: 16px 0; padding: 4px 16px; border-left: 4px solid #ddd;
  color: #666; }
pre { background: #f6f8fa; padding: 12px; overflow-x: auto; border-radius: 4px; }
table { border-collapse: collapse; margin: 16px 0; width: 100%; }
th, td { border: 1px solid #ddd; padding: 6px 10px; text-align: left; }
th { background: #f6f8fa; }
hr { border: none; border-top: 1px solid #eee; margin: 24px 0; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="meta">
{{if .Author}}<span>{{.Author}}</span> · {{end}}<a href="{{.SourceURL}}">{{.SourceURL}}</a> · {{.Saved}}
</div>
{{.Body}}
</body>
</html>
`

// Renderer emits self-contained HTML pages with embedded styling.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{
		tmpl: template.Must(template.New("page").Parse(page)),
	}
}

// Format returns FormatHTML.
func (r *Renderer) Format() artfetch.Format {
	return artfetch.FormatHTML
}

// Render produces the full HTML page.
func (r *Renderer) Render(doc *artfetch.Document) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, artfetch.Errorf(artfetch.EINTERNAL, "rendering invalid document: %v", err)
	}

	var buf bytes.Buffer
	err := r.tmpl.Execute(&buf, struct {
		Title     string
		Author    string
		SourceURL string
		Saved     string
		Body      template.HTML
	}{
		Title:     doc.Title,
		Author:    doc.Author,
		SourceURL: doc.SourceURL,
		Saved:     doc.FetchedAt.Format("2006-01-02"),
		Body:      RenderBlocks(doc.Blocks, nil),
	})
	if err != nil {
		return nil, artfetch.Errorf(artfetch.EINTERNAL, "executing page template: %v", err)
	}
	return buf.Bytes(), nil
}

// RenderBlocks converts content blocks to an HTML fragment, preserving
// document order and style hints. imgSrc, when non-nil, maps an image
// block's URL to the src attribute to emit; the EPUB renderer uses it to
// point at package-internal image paths.
func RenderBlocks(blocks []artfetch.Block, imgSrc func(string) string) template.HTML {
	var b strings.Builder
	for _, block := range blocks {
		writeBlock(&b, block, imgSrc)
	}
	return template.HTML(b.String())
}

func writeBlock(b *strings.Builder, block artfetch.Block, imgSrc func(string) string) {
	switch block.Kind {
	case artfetch.BlockHeading:
		level := block.Level
		if level < 1 || level > 6 {
			level = 2
		}
		fmt.Fprintf(b, "<h%d%s>%s</h%d>\n", level, styleAttr(block.Style), inner(block), level)

	case artfetch.BlockParagraph:
		fmt.Fprintf(b, "<p%s>%s</p>\n", styleAttr(block.Style), inner(block))

	case artfetch.BlockImage:
		src := block.URL
		if imgSrc != nil {
			src = imgSrc(src)
		}
		fmt.Fprintf(b, `<img src="%s" alt="%s">`+"\n", html.EscapeString(src), html.EscapeString(block.Alt))

	case artfetch.BlockQuote:
		fmt.Fprintf(b, "<blockquote%s>%s</blockquote>\n", styleAttr(block.Style), inner(block))

	case artfetch.BlockCode:
		fmt.Fprintf(b, "<pre><code>%s</code></pre>\n", html.EscapeString(block.Text))

	case artfetch.BlockList:
		tag := "ul"
		if block.Ordered {
			tag = "ol"
		}
		fmt.Fprintf(b, "<%s>\n", tag)
		for _, item := range block.Items {
			fmt.Fprintf(b, "<li>%s</li>\n", html.EscapeString(item))
		}
		fmt.Fprintf(b, "</%s>\n", tag)

	case artfetch.BlockTable:
		b.WriteString("<table>\n")
		for i, row := range block.Rows {
			cell := "td"
			if i == 0 {
				cell = "th"
			}
			b.WriteString("<tr>")
			for _, c := range row {
				fmt.Fprintf(b, "<%s>%s</%s>", cell, html.EscapeString(c), cell)
			}
			b.WriteString("</tr>\n")
		}
		b.WriteString("</table>\n")

	case artfetch.BlockDivider:
		b.WriteString("<hr>\n")
	}
}

// inner returns the block's rich inner HTML when the extractor preserved
// it, otherwise the escaped plain text.
func inner(block artfetch.Block) string {
	if block.HTML != "" {
		return block.HTML
	}
	return html.EscapeString(block.Text)
}

// styleAttr renders captured presentation hints as an inline style.
func styleAttr(s *artfetch.Style) string {
	if s == nil {
		return ""
	}
	var parts []string
	if s.Color != "" {
		parts = append(parts, "color:"+s.Color)
	}
	if s.Centered {
		parts = append(parts, "text-align:center")
	}
	if len(parts) == 0 {
		return ""
	}
	return ` style="` + html.EscapeString(strings.Join(parts, ";")) + `"`
}
