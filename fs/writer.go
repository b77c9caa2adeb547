// Package fs persists rendered artifacts to the local filesystem.
package fs

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/artfetch/artfetch"
	"github.com/cespare/xxhash/v2"
)

// MaxFilenameRunes caps sanitized filenames; long article titles are
// truncated rather than rejected.
const MaxFilenameRunes = 100

var (
	// Characters not allowed in Windows filenames and problematic on Unix.
	illegalRunes = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)
	whitespace   = regexp.MustCompile(`[\s_]+`)
)

// SanitizeFilename turns an article title into a safe filename stem.
// Illegal characters are stripped, whitespace runs collapse to a single
// underscore, and an empty result falls back to "article".
func SanitizeFilename(title string) string {
	name := illegalRunes.ReplaceAllString(title, "")
	name = whitespace.ReplaceAllString(strings.TrimSpace(name), "_")
	name = strings.Trim(name, "_.")

	if runes := []rune(name); len(runes) > MaxFilenameRunes {
		name = string(runes[:MaxFilenameRunes])
	}
	if name == "" {
		return "article"
	}
	return name
}

// Ensure Writer implements artfetch.DocumentWriter at compile time.
var _ artfetch.DocumentWriter = (*Writer)(nil)

// Writer writes rendered artifacts into a base directory, one file per
// document named after its sanitized title.
type Writer struct {
	baseDir string
}

// NewWriter creates a Writer rooted at baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteDocument writes the artifact and returns its path. When a file with
// identical content already exists the write is skipped, so re-archiving an
// unchanged article never touches its mtime.
func (w *Writer) WriteDocument(doc *artfetch.Document, format artfetch.Format, data []byte) (string, error) {
	if err := doc.Validate(); err != nil {
		return "", err
	}

	path := filepath.Join(w.baseDir, SanitizeFilename(doc.Title)+format.Ext())
	if err := os.MkdirAll(w.baseDir, 0755); err != nil {
		return "", err
	}

	if existing, err := os.ReadFile(path); err == nil {
		if xxhash.Sum64(existing) == xxhash.Sum64(data) {
			return path, nil
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
