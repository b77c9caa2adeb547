// Package readability adapts go-readability as a fallback content engine
// for the generic extraction cascade.
package readability

import (
	"strings"

	"github.com/artfetch/artfetch"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements artfetch.ContentExtractor at compile time.
var _ artfetch.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-readability to find the largest coherent text block
// in arbitrary markup.
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

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, artfetch.Errorf(artfetch.ENOCONTENT, "readability: %v", err)
	}

	return &artfetch.ExtractResult{
		Title:       article.Title,
		Author:      article.Byline,
		ContentHTML: article.Content,
	}, nil
}
