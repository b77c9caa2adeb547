// Package epub renders documents as EPUB packages with downloaded images
// embedded as package resources.
package epub

import (
	"bytes"
	"fmt"
	stdhtml "html"
	"os"
	"path/filepath"
	"strings"

	"github.com/artfetch/artfetch"
	"github.com/artfetch/artfetch/html"
	"github.com/bmaupin/go-epub"
	"github.com/google/uuid"
)

// Ensure Renderer implements artfetch.Renderer at compile time.
var _ artfetch.Renderer = (*Renderer)(nil)

// Renderer emits EPUB packages. Locally downloaded images are read from
// imageDir and embedded; images that failed to download keep their remote
// URL in the content.
type Renderer struct {
	imageDir string
}

// NewRenderer creates a Renderer embedding images from imageDir.
func NewRenderer(imageDir string) *Renderer {
	return &Renderer{imageDir: imageDir}
}

// Format returns FormatEPUB.
func (r *Renderer) Format() artfetch.Format {
	return artfetch.FormatEPUB
}

// Render builds the zipped EPUB package in memory.
func (r *Renderer) Render(doc *artfetch.Document) ([]byte, error) {
	if err := doc.Validate(); err != nil {
		return nil, artfetch.Errorf(artfetch.EINTERNAL, "rendering invalid document: %v", err)
	}

	e := epub.NewEpub(doc.Title)
	e.SetIdentifier("urn:uuid:" + uuid.NewString())
	if doc.Author != "" {
		e.SetAuthor(doc.Author)
	}
	e.SetDescription("Saved from " + doc.SourceURL)

	// Embed each locally downloaded image once and record the mapping from
	// its document path to the package-internal path. An image that cannot
	// be embedded keeps whatever URL the block carries.
	internal := make(map[string]string)
	for _, ref := range doc.Images {
		if ref.State != artfetch.ImageLocal {
			continue
		}
		if _, ok := internal[ref.LocalPath]; ok {
			continue
		}
		name := filepath.Base(ref.LocalPath)
		source := filepath.Join(r.imageDir, name)
		// The package writer reads sources at write time and fails the whole
		// package on a missing file, so verify now and degrade per image.
		if _, err := os.Stat(source); err != nil {
			continue
		}
		path, err := e.AddImage(source, name)
		if err != nil {
			continue
		}
		internal[ref.LocalPath] = path
	}

	body := string(html.RenderBlocks(doc.Blocks, func(u string) string {
		if p, ok := internal[u]; ok {
			return p
		}
		return u
	}))
	// Inline references inside rich block HTML use the same mapping.
	for local, path := range internal {
		body = strings.ReplaceAll(body, local, path)
	}

	section := fmt.Sprintf("<h1>%s</h1>\n%s", stdhtml.EscapeString(doc.Title), body)
	if _, err := e.AddSection(section, doc.Title, "", ""); err != nil {
		return nil, artfetch.Errorf(artfetch.EINTERNAL, "adding content section: %v", err)
	}

	var buf bytes.Buffer
	if _, err := e.WriteTo(&buf); err != nil {
		return nil, artfetch.Errorf(artfetch.EINTERNAL, "writing package: %v", err)
	}
	return buf.Bytes(), nil
}
