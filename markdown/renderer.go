// Package markdown renders documents as CommonMark text with a metadata
// header. Inline formatting inside blocks is converted from HTML by
// html-to-markdown; plain text goes through Markdown escaping.
package markdown

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/artfetch/artfetch"
)

// Ensure Renderer implements artfetch.Renderer at compile time.
var _ artfetch.Renderer = (*Renderer)(nil)

// Renderer emits Markdown artifacts.
type Renderer struct {
	conv *converter.Converter
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Renderer{conv: conv}
}

// Format returns FormatMarkdown.
func (r *Renderer) Format() artfetch.Format {
	return artfetch.FormatMarkdown
}

// Render produces the complete Markdown artifact: metadata header followed
// by the content blocks in document order.
func (r *Renderer) Render(doc *artfetch.Document) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, artfetch.Errorf(artfetch.EINTERNAL, "rendering invalid document: %v", err)
	}

	var b strings.Builder
	b.WriteString("# ")
	b.WriteString(doc.Title)
	b.WriteString("\n\n")
	if doc.Author != "" {
		fmt.Fprintf(&b, "> **Author**: %s\n", doc.Author)
	}
	fmt.Fprintf(&b, "> **Source**: %s\n", doc.SourceURL)
	fmt.Fprintf(&b, "> **Saved**: %s\n", doc.FetchedAt.Format("2006-01-02"))
	b.WriteString("\n---\n")

	for _, block := range doc.Blocks {
		text := r.renderBlock(block)
		if text == "" {
			continue
		}
		b.WriteString("\n")
		b.WriteString(text)
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}

func (r *Renderer) renderBlock(block artfetch.Block) string {
	switch block.Kind {
	case artfetch.BlockHeading:
		level := block.Level
		if level < 1 || level > 6 {
			level = 2
		}
		return strings.Repeat("#", level) + " " + r.inline(block)

	case artfetch.BlockParagraph:
		return r.inline(block)

	case artfetch.BlockImage:
		return fmt.Sprintf("![%s](%s)", escapeText(block.Alt), escapeURL(block.URL))

	case artfetch.BlockQuote:
		lines := strings.Split(r.inline(block), "\n")
		for i, line := range lines {
			lines[i] = "> " + line
		}
		return strings.Join(lines, "\n")

	case artfetch.BlockCode:
		return "```\n" + block.Text + "\n```"

	case artfetch.BlockList:
		var b strings.Builder
		for i, item := range block.Items {
			if i > 0 {
				b.WriteString("\n")
			}
			if block.Ordered {
				fmt.Fprintf(&b, "%d. %s", i+1, escapeText(item))
			} else {
				b.WriteString("- " + escapeText(item))
			}
		}
		return b.String()

	case artfetch.BlockTable:
		return renderTable(block.Rows)

	case artfetch.BlockDivider:
		return "---"
	}
	return ""
}

// inline converts a block's rich HTML to Markdown, falling back to the
// escaped plain text when there is no HTML or conversion fails.
func (r *Renderer) inline(block artfetch.Block) string {
	if block.HTML != "" {
		if md, err := r.conv.ConvertString(block.HTML); err == nil {
			if md = strings.TrimSpace(md); md != "" {
				return md
			}
		}
	}
	return escapeText(block.Text)
}

// renderTable emits a pipe table, header row first, preserving shape.
func renderTable(rows [][]string) string {
	if len(rows) == 0 {
		return ""
	}
	width := 0
	for _, row := range rows {
		if len(row) > width {
			width = len(row)
		}
	}

	var b strings.Builder
	for i, row := range rows {
		b.WriteString("|")
		for c := 0; c < width; c++ {
			cell := ""
			if c < len(row) {
				cell = escapeCell(row[c])
			}
			b.WriteString(" " + cell + " |")
		}
		b.WriteString("\n")
		if i == 0 {
			b.WriteString("|")
			for c := 0; c < width; c++ {
				b.WriteString(" --- |")
			}
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

var textEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
	"|", `\|`,
)

// escapeText neutralizes Markdown-significant characters in plain text so
// article prose cannot trigger accidental formatting.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(escapeText(s), "\n", " ")
}

var urlEscaper = strings.NewReplacer(
	" ", "%20",
	"(", "%28",
	")", "%29",
	"<", "%3C",
	">", "%3E",
)

// escapeURL percent-encodes characters that would terminate or break a
// link destination. Remote URLs survive failed downloads, and CDN query
// strings routinely carry spaces and parentheses.
func escapeURL(s string) string {
	return urlEscaper.Replace(s)
}

// Metadata is the header block parsed back out of a rendered artifact.
type Metadata struct {
	Title     string
	Author    string
	SourceURL string
	Saved     string
}

// ParseMetadata recovers the metadata header from rendered Markdown.
// The header round-trips: Render then ParseMetadata yields the document's
// title, author and source URL.
func ParseMetadata(data []byte) (*Metadata, error) {
	meta := &Metadata{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "# ") && meta.Title == "":
			meta.Title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		case strings.HasPrefix(line, "> **Author**: "):
			meta.Author = strings.TrimPrefix(line, "> **Author**: ")
		case strings.HasPrefix(line, "> **Source**: "):
			meta.SourceURL = strings.TrimPrefix(line, "> **Source**: ")
		case strings.HasPrefix(line, "> **Saved**: "):
			meta.Saved = strings.TrimPrefix(line, "> **Saved**: ")
		case line == "---":
			if meta.Title != "" {
				return meta, scanner.Err()
			}
		}
	}
	if meta.Title == "" {
		return nil, artfetch.Errorf(artfetch.EINVALID, "no metadata header found")
	}
	return meta, scanner.Err()
}
