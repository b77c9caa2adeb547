package slog

import (
	"log/slog"

	"github.com/artfetch/artfetch"
)

// Ensure LoggingRegistry implements artfetch.ExtractorRegistry.
var _ artfetch.ExtractorRegistry = (*LoggingRegistry)(nil)

// LoggingRegistry wraps an ExtractorRegistry with debug logging for source
// classification.
type LoggingRegistry struct {
	next   artfetch.ExtractorRegistry
	logger *slog.Logger
}

// NewLoggingRegistry creates a new LoggingRegistry.
func NewLoggingRegistry(next artfetch.ExtractorRegistry, logger *slog.Logger) *LoggingRegistry {
	return &LoggingRegistry{next: next, logger: logger}
}

// Get delegates to the wrapped registry.
func (r *LoggingRegistry) Get(source artfetch.Source) artfetch.Extractor {
	return r.next.Get(source)
}

// GetForURL classifies the URL, logs the selection, and returns the
// appropriate extractor.
func (r *LoggingRegistry) GetForURL(rawURL string) artfetch.Extractor {
	extractor := r.next.GetForURL(rawURL)
	name := "(none)"
	if extractor != nil {
		name = extractor.Name()
	}
	r.logger.Info("extractor selection",
		"url", rawURL,
		"source", string(artfetch.ClassifySource(rawURL)),
		"extractor", name,
	)
	return extractor
}

// Register delegates to the wrapped registry.
func (r *LoggingRegistry) Register(source artfetch.Source, e artfetch.Extractor) {
	r.next.Register(source, e)
}

// List delegates to the wrapped registry.
func (r *LoggingRegistry) List() []artfetch.Source {
	return r.next.List()
}
