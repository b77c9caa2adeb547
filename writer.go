package artfetch

// DocumentWriter persists rendered artifacts.
type DocumentWriter interface {
	// WriteDocument stores the rendered artifact for the document in the
	// given format and returns the path it was written to. Writing the
	// same unchanged artifact twice is a no-op.
	WriteDocument(doc *Document, format Format, data []byte) (string, error)
}
