package mock

import "github.com/artfetch/artfetch"

var _ artfetch.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of artfetch.Renderer.
type Renderer struct {
	RenderFn func(doc *artfetch.Document) ([]byte, error)
	FormatFn func() artfetch.Format
}

func (r *Renderer) Render(doc *artfetch.Document) ([]byte, error) {
	return r.RenderFn(doc)
}

func (r *Renderer) Format() artfetch.Format {
	if r.FormatFn == nil {
		return artfetch.FormatMarkdown
	}
	return r.FormatFn()
}
