package goquery_test

import (
	"strings"
	"testing"

	"github.com/artfetch/artfetch"
	artgoquery "github.com/artfetch/artfetch/goquery"
	"github.com/artfetch/artfetch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenericExtractor_Extract(t *testing.T) {
	t.Parallel()

	longText := strings.Repeat("A sentence with enough words to clear the minimum text threshold. ", 10)

	t.Run("stage one finds article container", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><meta property="og:title" content="A Found Post"></head><body>
<nav>menu menu menu</nav>
<article><p>` + longText + `</p></article>
</body></html>`

		e := artgoquery.NewGenericExtractor()
		doc, err := e.Extract(page, "https://blog.example.com/post")

		require.NoError(t, err)
		assert.Equal(t, "A Found Post", doc.Title)
		require.NotEmpty(t, doc.Blocks)
		assert.Contains(t, doc.Blocks[0].Text, "enough words")
	})

	t.Run("stage two picks densest div when no marker matches", func(t *testing.T) {
		t.Parallel()

		page := `<html><body>
<div class="widgets"><a href="/a">x</a><a href="/b">y</a><a href="/c">z</a></div>
<div class="story"><p>` + longText + `</p></div>
</body></html>`

		e := artgoquery.NewGenericExtractor()
		doc, err := e.Extract(page, "https://blog.example.com/post")

		require.NoError(t, err)
		require.NotEmpty(t, doc.Blocks)
		assert.Contains(t, doc.Blocks[0].Text, "enough words")
	})

	t.Run("fallback engine is consulted when heuristics fail", func(t *testing.T) {
		t.Parallel()

		engine := &mock.ContentExtractor{
			ExtractFn: func(html string) (*artfetch.ExtractResult, error) {
				return &artfetch.ExtractResult{
					Title:       "Engine Title",
					Author:      "Engine Author",
					ContentHTML: "<p>" + longText + "</p>",
				}, nil
			},
		}

		e := artgoquery.NewGenericExtractor(engine)
		doc, err := e.Extract("<html><body><p>tiny</p></body></html>", "https://blog.example.com/post")

		require.NoError(t, err)
		assert.Equal(t, "Engine Title", doc.Title)
		assert.Equal(t, "Engine Author", doc.Author)
		require.NotEmpty(t, doc.Blocks)
	})

	t.Run("exhausted cascade yields ENOCONTENT", func(t *testing.T) {
		t.Parallel()

		e := artgoquery.NewGenericExtractor()
		_, err := e.Extract("<html><body><p>too short</p></body></html>", "https://blog.example.com/empty")

		require.Error(t, err)
		assert.Equal(t, artfetch.ENOCONTENT, artfetch.ErrorCode(err))
	})

	t.Run("thresholds are configurable", func(t *testing.T) {
		t.Parallel()

		e := artgoquery.NewGenericExtractor()
		e.MinTextLen = 5

		doc, err := e.Extract("<html><body><article><p>short but accepted</p></article></body></html>",
			"https://blog.example.com/short")

		require.NoError(t, err)
		require.Len(t, doc.Blocks, 1)
	})
}
