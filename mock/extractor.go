package mock

import "github.com/artfetch/artfetch"

var _ artfetch.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of artfetch.Extractor.
type Extractor struct {
	ExtractFn func(html string, sourceURL string) (*artfetch.Document, error)
	NameFn    func() string
}

func (e *Extractor) Extract(html string, sourceURL string) (*artfetch.Document, error) {
	return e.ExtractFn(html, sourceURL)
}

func (e *Extractor) Name() string {
	if e.NameFn == nil {
		return "mock"
	}
	return e.NameFn()
}

var _ artfetch.ContentExtractor = (*ContentExtractor)(nil)

// ContentExtractor is a mock implementation of artfetch.ContentExtractor.
type ContentExtractor struct {
	ExtractFn func(html string) (*artfetch.ExtractResult, error)
}

func (e *ContentExtractor) Extract(html string) (*artfetch.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ artfetch.ExtractorRegistry = (*ExtractorRegistry)(nil)

// ExtractorRegistry is a mock implementation of artfetch.ExtractorRegistry.
type ExtractorRegistry struct {
	GetFn       func(source artfetch.Source) artfetch.Extractor
	GetForURLFn func(rawURL string) artfetch.Extractor
	RegisterFn  func(source artfetch.Source, e artfetch.Extractor)
	ListFn      func() []artfetch.Source
}

func (r *ExtractorRegistry) Get(source artfetch.Source) artfetch.Extractor {
	return r.GetFn(source)
}

func (r *ExtractorRegistry) GetForURL(rawURL string) artfetch.Extractor {
	return r.GetForURLFn(rawURL)
}

func (r *ExtractorRegistry) Register(source artfetch.Source, e artfetch.Extractor) {
	if r.RegisterFn != nil {
		r.RegisterFn(source, e)
	}
}

func (r *ExtractorRegistry) List() []artfetch.Source {
	if r.ListFn == nil {
		return nil
	}
	return r.ListFn()
}
