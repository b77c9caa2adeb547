package artfetch

import (
	"fmt"
	"html"
	"net/url"
	"path"
	"strings"
	"time"
)

// ImageState tracks the outcome of resolving one image ref. The three-state
// model lets renderers distinguish "not yet attempted" from "attempted and
// failed": a failed ref keeps its original remote URL in the output.
type ImageState int

// Image resolution states.
const (
	ImageUnresolved ImageState = iota
	ImageLocal
	ImageFailed
)

// String returns a label for the state.
func (s ImageState) String() string {
	switch s {
	case ImageLocal:
		return "local"
	case ImageFailed:
		return "failed"
	default:
		return "unresolved"
	}
}

// ImageRef is a tracked image URL within a document.
type ImageRef struct {
	// OriginalURL is the URL exactly as discovered in the markup.
	OriginalURL string

	// ResolvedURL is the absolute fetchable URL after normalization.
	// Empty until resolution.
	ResolvedURL string

	// LocalPath is the path relative to the output directory
	// (e.g. "images/20250101_120000_000001_1.jpg") once downloaded.
	LocalPath string

	// Index is the 1-based discovery order, assigned at registration time.
	// It breaks naming ties between images fetched in the same microsecond
	// and stays tied to discovery order even under concurrent downloads.
	Index int

	State ImageState
}

// NormalizeImageURL turns an image URL as found in markup into a single
// well-formed absolute URL. It decodes HTML entities, expands
// protocol-relative and page-relative URLs against the article's URL, and
// unwraps known image-proxy patterns to recover the true origin image.
func NormalizeImageURL(raw string, pageURL string) (string, error) {
	raw = strings.TrimSpace(html.UnescapeString(raw))
	if raw == "" {
		return "", Errorf(EINVALID, "empty image URL")
	}
	if strings.HasPrefix(raw, "data:") {
		return "", Errorf(EINVALID, "data URI is not fetchable")
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid page URL %q: %v", pageURL, err)
	}

	switch {
	case strings.HasPrefix(raw, "//"):
		scheme := base.Scheme
		if scheme == "" {
			scheme = "https"
		}
		raw = scheme + ":" + raw
	case strings.HasPrefix(raw, "http://"), strings.HasPrefix(raw, "https://"):
		// already absolute
	default:
		ref, err := url.Parse(raw)
		if err != nil {
			return "", Errorf(EINVALID, "invalid image URL %q: %v", raw, err)
		}
		raw = base.ResolveReference(ref).String()
	}

	if inner := UnwrapProxyURL(raw); inner != "" {
		raw = inner
	}

	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", Errorf(EINVALID, "image URL %q is not fetchable", raw)
	}
	return u.String(), nil
}

// UnwrapProxyURL extracts the original image URL from a proxy URL of the
// form .../image?url=<encoded-original> (Notion's /_next/image pattern and
// similar). Returns "" when the URL is not a recognized proxy.
func UnwrapProxyURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if !strings.HasSuffix(u.Path, "/image") && !strings.Contains(u.Path, "/image/") {
		return ""
	}
	inner := u.Query().Get("url")
	if inner == "" {
		return ""
	}
	if decoded, err := url.QueryUnescape(inner); err == nil {
		inner = decoded
	}
	if !strings.HasPrefix(inner, "http://") && !strings.HasPrefix(inner, "https://") {
		return ""
	}
	return inner
}

// imageExts are the extensions carried over from the resolved URL; anything
// else falls back to .jpg until the download's content type says otherwise.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".bmp":  true,
	".ico":  true,
}

// ImageExtension derives a file extension from a resolved image URL.
// Defaults to ".jpg" when the URL carries no recognized extension.
func ImageExtension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".jpg"
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if imageExts[ext] {
		return ext
	}
	return ".jpg"
}

// ExtensionForContentType maps an image response content type to a file
// extension. Returns "" for unrecognized types.
func ExtensionForContentType(contentType string) string {
	switch {
	case strings.Contains(contentType, "jpeg"), strings.Contains(contentType, "jpg"):
		return ".jpg"
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "gif"):
		return ".gif"
	case strings.Contains(contentType, "webp"):
		return ".webp"
	case strings.Contains(contentType, "svg"):
		return ".svg"
	default:
		return ""
	}
}

// LocalImageName builds a collision-free local filename for a downloaded
// image. The discovery index seq disambiguates images named in the same
// microsecond within one document.
func LocalImageName(t time.Time, seq int, ext string) string {
	return fmt.Sprintf("%s_%06d_%d%s", t.Format("20060102_150405"), t.Nanosecond()/1000, seq, ext)
}
