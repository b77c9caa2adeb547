package trafilatura_test

import (
	"testing"

	"github.com/artfetch/artfetch"
	"github.com/artfetch/artfetch/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts main content and title", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Field Notes - Some Blog</title>
<meta property="og:title" content="Field Notes">
</head>
<body>
<nav><a href="/">Home</a><a href="/archive">Archive</a></nav>
<article>
<h1>Field Notes</h1>
<p>This is the substantive body of the article that readers came for.</p>
<p>It continues for another paragraph with more detail and context.</p>
</article>
<footer>Copyright 2025 Example Corp</footer>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.NotEmpty(t, result.Title)
		assert.Contains(t, result.ContentHTML, "substantive body of the article")
		assert.NotContains(t, result.ContentHTML, "Copyright 2025 Example Corp")
	})

	t.Run("extracts author metadata", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<head>
<title>Post</title>
<meta name="author" content="Ann Author">
</head>
<body>
<article>
<h1>Post</h1>
<p>Enough article prose to make the extraction worthwhile for the engine.</p>
</article>
</body>
</html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.Author, "Ann Author")
	})

	t.Run("returns error for empty input", func(t *testing.T) {
		t.Parallel()

		ext := trafilatura.NewExtractor()
		_, err := ext.Extract("")

		require.Error(t, err)
		assert.Equal(t, artfetch.EINVALID, artfetch.ErrorCode(err))
	})

	t.Run("handles minimal valid HTML", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><p>Simple content</p></body></html>`

		ext := trafilatura.NewExtractor()
		result, err := ext.Extract(html)

		require.NoError(t, err)
		assert.Contains(t, result.ContentHTML, "Simple content")
	})
}
