package goquery_test

import (
	"testing"

	"github.com/artfetch/artfetch"
	artgoquery "github.com/artfetch/artfetch/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const wechatPage = `<!DOCTYPE html>
<html>
<head>
<meta property="og:title" content="测试文章">
<title>测试文章 - 微信公众号平台</title>
<script>var nickname = "技术小报";</script>
</head>
<body>
<h1 class="rich_media_title">测试文章</h1>
<div id="js_content" class="rich_media_content">
  <p style="text-align: center;">第一段内容，居中显示。</p>
  <p><img data-src="https://mmbiz.qpic.cn/x.jpg" src="data:image/gif;base64,R0" alt="配图"></p>
  <h2>小节标题</h2>
  <p style="color: #ff0000;">红色文字。</p>
  <script>tracking();</script>
</div>
<div class="qr_code_pc_outer">扫码关注</div>
</body>
</html>`

func TestWeChatExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("extracts title author and blocks", func(t *testing.T) {
		t.Parallel()

		e := artgoquery.NewWeChatExtractor()
		doc, err := e.Extract(wechatPage, "https://mp.weixin.qq.com/s/demo")

		require.NoError(t, err)
		assert.Equal(t, "测试文章", doc.Title)
		assert.Equal(t, "技术小报", doc.Author)
		assert.Equal(t, artfetch.SourceWeChat, doc.Source)
		assert.Equal(t, "https://mp.weixin.qq.com/s/demo", doc.SourceURL)
		assert.False(t, doc.FetchedAt.IsZero())
		assert.NotEmpty(t, doc.ContentHash)

		require.Len(t, doc.Blocks, 4)
		assert.Equal(t, artfetch.BlockParagraph, doc.Blocks[0].Kind)
		require.NotNil(t, doc.Blocks[0].Style)
		assert.True(t, doc.Blocks[0].Style.Centered)

		assert.Equal(t, artfetch.BlockImage, doc.Blocks[1].Kind)
		assert.Equal(t, "https://mmbiz.qpic.cn/x.jpg", doc.Blocks[1].URL)

		assert.Equal(t, artfetch.BlockHeading, doc.Blocks[2].Kind)
		assert.Equal(t, 2, doc.Blocks[2].Level)

		require.NotNil(t, doc.Blocks[3].Style)
		assert.Equal(t, "#ff0000", doc.Blocks[3].Style.Color)

		require.Len(t, doc.Images, 1)
		assert.Equal(t, "https://mmbiz.qpic.cn/x.jpg", doc.Images[0].OriginalURL)
		assert.Equal(t, 1, doc.Images[0].Index)
	})

	t.Run("page without container yields ENOCONTENT", func(t *testing.T) {
		t.Parallel()

		e := artgoquery.NewWeChatExtractor()
		_, err := e.Extract("<html><body><p>not an article</p></body></html>", "https://mp.weixin.qq.com/s/x")

		require.Error(t, err)
		assert.Equal(t, artfetch.ENOCONTENT, artfetch.ErrorCode(err))
	})

	t.Run("missing title falls back to placeholder", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><div id="js_content"><p>内容在这里，但是没有标题。</p></div></body></html>`
		e := artgoquery.NewWeChatExtractor()
		doc, err := e.Extract(page, "https://mp.weixin.qq.com/s/y")

		require.NoError(t, err)
		assert.Contains(t, doc.Title, "Untitled-")
	})
}
