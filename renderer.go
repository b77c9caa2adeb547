package artfetch

// Format identifies an output document format.
type Format string

// Supported output formats.
const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatEPUB     Format = "epub"
)

// Ext returns the artifact file extension for the format.
func (f Format) Ext() string {
	switch f {
	case FormatHTML:
		return ".html"
	case FormatEPUB:
		return ".epub"
	default:
		return ".md"
	}
}

// ParseFormat validates a format name from configuration.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatMarkdown, FormatHTML, FormatEPUB:
		return Format(s), nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", Errorf(EINVALID, "unknown output format %q", s)
}

// Renderer projects a finalized document into one output format. Renderers
// never mutate the document; given the same document they may run in any
// order or concurrently.
type Renderer interface {
	// Render returns the complete artifact bytes. For EPUB this is the
	// zipped package. Returns EINTERNAL if the document violates its
	// invariants, which indicates a bug upstream.
	Render(doc *Document) ([]byte, error)

	// Format returns the output format this renderer produces.
	Format() Format
}
