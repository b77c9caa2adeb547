package mock

import "github.com/artfetch/artfetch"

var _ artfetch.DocumentWriter = (*DocumentWriter)(nil)

// DocumentWriter is a mock implementation of artfetch.DocumentWriter.
type DocumentWriter struct {
	WriteDocumentFn func(doc *artfetch.Document, format artfetch.Format, data []byte) (string, error)
}

func (w *DocumentWriter) WriteDocument(doc *artfetch.Document, format artfetch.Format, data []byte) (string, error) {
	return w.WriteDocumentFn(doc, format, data)
}
