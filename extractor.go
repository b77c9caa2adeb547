package artfetch

// Extractor parses raw article markup into a normalized Document.
// One implementation exists per source variant; the registry selects one
// from the classifier's output.
type Extractor interface {
	// Extract parses raw HTML fetched from sourceURL. It returns
	// ENOCONTENT when no heuristic yields usable content and EMALFORMED
	// when the markup cannot be parsed at all.
	Extract(html string, sourceURL string) (*Document, error)

	// Name returns the extractor's identifier (e.g. "wechat", "generic").
	Name() string
}

// ExtractorRegistry maps source variants to extraction strategies.
type ExtractorRegistry interface {
	// Get returns the extractor for a source.
	// Returns nil if none is registered.
	Get(source Source) Extractor

	// GetForURL classifies the URL and returns the appropriate extractor,
	// falling back to the generic extractor for unrecognized sites.
	GetForURL(rawURL string) Extractor

	// Register adds an extractor for a source.
	Register(source Source, e Extractor)

	// List returns all registered sources.
	List() []Source
}

// ExtractResult holds content pulled out of a page by a fallback engine.
type ExtractResult struct {
	Title  string
	Author string

	// ContentHTML is the main content as clean HTML with boilerplate
	// (nav, footer, sidebar, ads) removed.
	ContentHTML string
}

// ContentExtractor is a lower-level extraction engine producing clean HTML
// rather than a block tree. The generic extractor chains these as fallback
// stages of its heuristic cascade.
type ContentExtractor interface {
	Extract(html string) (*ExtractResult, error)
}
