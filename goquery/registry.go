package goquery

import "github.com/artfetch/artfetch"

var _ artfetch.ExtractorRegistry = (*Registry)(nil)

// Registry maps source variants to extraction strategies. Selection follows
// the classifier's output tag; unrecognized sites get the generic fallback.
type Registry struct {
	fallback   artfetch.Extractor
	extractors map[artfetch.Source]artfetch.Extractor
}

// NewRegistry creates a Registry with the given fallback extractor. The
// fallback serves any source with no registered strategy.
func NewRegistry(fallback artfetch.Extractor) *Registry {
	return &Registry{
		fallback:   fallback,
		extractors: make(map[artfetch.Source]artfetch.Extractor),
	}
}

// Get returns the extractor for a source, or nil if none is registered.
func (r *Registry) Get(source artfetch.Source) artfetch.Extractor {
	return r.extractors[source]
}

// GetForURL classifies the URL and returns the matching extractor, falling
// back to the generic extractor.
func (r *Registry) GetForURL(rawURL string) artfetch.Extractor {
	source := artfetch.ClassifySource(rawURL)
	if e, ok := r.extractors[source]; ok {
		return e
	}
	return r.fallback
}

// Register adds an extractor for a source, replacing any existing one.
func (r *Registry) Register(source artfetch.Source, e artfetch.Extractor) {
	r.extractors[source] = e
}

// List returns all registered sources.
func (r *Registry) List() []artfetch.Source {
	sources := make([]artfetch.Source, 0, len(r.extractors))
	for s := range r.extractors {
		sources = append(sources, s)
	}
	return sources
}
