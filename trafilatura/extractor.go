// Package trafilatura adapts go-trafilatura as the last-resort content
// engine for the generic extraction cascade. Its own internal fallbacks
// make it the widest net in the chain.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/artfetch/artfetch"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements artfetch.ContentExtractor at compile time.
var _ artfetch.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content.
func (e *Extractor) Extract(rawHTML string) (*artfetch.ExtractResult, error) {
	if rawHTML == "" {
		return nil, artfetch.Errorf(artfetch.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, artfetch.Errorf(artfetch.ENOCONTENT, "trafilatura: %v", err)
	}

	var contentHTML string
	if result.ContentNode != nil {
		contentHTML, err = renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
	}

	return &artfetch.ExtractResult{
		Title:       result.Metadata.Title,
		Author:      result.Metadata.Author,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
