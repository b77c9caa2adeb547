package artfetch

import (
	"fmt"
	"time"
)

// BlockKind identifies the type of a content block.
type BlockKind string

// Block kinds. Order of blocks is the only structure a document has; no
// renderer may reorder them.
const (
	BlockHeading   BlockKind = "heading"
	BlockParagraph BlockKind = "paragraph"
	BlockImage     BlockKind = "image"
	BlockTable     BlockKind = "table"
	BlockList      BlockKind = "list"
	BlockQuote     BlockKind = "blockquote"
	BlockCode      BlockKind = "code"
	BlockDivider   BlockKind = "divider"
)

// Style carries presentation hints captured from inline style attributes
// during extraction. The HTML and EPUB renderers reproduce them; the
// Markdown renderer ignores them.
type Style struct {
	Color    string
	Centered bool
}

// Block is one ordered unit of article content.
type Block struct {
	Kind  BlockKind
	Level int    // heading level 1-6
	Text  string // plain text, entities decoded

	// HTML is the block's inner HTML with inline formatting (links, bold,
	// inline styles) preserved. Empty for image and divider blocks.
	HTML string

	// Image fields.
	URL string
	Alt string

	// Table rows, first row is the header.
	Rows [][]string

	// List items.
	Items   []string
	Ordered bool

	Style *Style
}

// Document is the normalized representation of one fetched article. It is
// created by an Extractor, mutated exactly once by the image resolver (URL
// rewrite), and read-only for renderers.
type Document struct {
	Title       string
	Author      string
	SourceURL   string
	Source      Source
	FetchedAt   time.Time
	ContentHash string
	Blocks      []Block
	Images      []*ImageRef
}

// Validate returns an error if the document cannot be rendered.
func (d *Document) Validate() error {
	if d.Title == "" {
		return Errorf(EINVALID, "document title required")
	}
	if d.SourceURL == "" {
		return Errorf(EINVALID, "document source URL required")
	}
	for i, b := range d.Blocks {
		if b.Kind == BlockImage && b.URL == "" {
			return Errorf(EINVALID, "image block %d has no URL", i)
		}
	}
	return nil
}

// RegisterImage records an image URL discovered in the content and returns
// its ref. The same URL registered twice returns the existing ref, so one
// document never downloads the same image more than once. Discovery indexes
// are 1-based and assigned in registration order.
func (d *Document) RegisterImage(url string) *ImageRef {
	for _, ref := range d.Images {
		if ref.OriginalURL == url {
			return ref
		}
	}
	ref := &ImageRef{
		OriginalURL: url,
		Index:       len(d.Images) + 1,
		State:       ImageUnresolved,
	}
	d.Images = append(d.Images, ref)
	return ref
}

// ImageByURL returns the ref for an original image URL, or nil.
func (d *Document) ImageByURL(url string) *ImageRef {
	for _, ref := range d.Images {
		if ref.OriginalURL == url {
			return ref
		}
	}
	return nil
}

// FallbackTitle synthesizes a placeholder title so every document is
// nameable even when extraction finds no title.
func FallbackTitle(t time.Time) string {
	return fmt.Sprintf("Untitled-%s", t.Format("20060102150405"))
}
