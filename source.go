package artfetch

import "strings"

// Source identifies the publishing platform an article URL belongs to.
// The source selects the extraction strategy.
type Source string

// Supported source variants.
const (
	SourceWeChat  Source = "wechat"
	SourceNotion  Source = "notion"
	SourceZhihu   Source = "zhihu"
	SourceMedium  Source = "medium"
	SourceGeneric Source = "generic"
)

// sourcePattern maps a URL substring to a source. First match wins.
type sourcePattern struct {
	Substring string
	Source    Source
}

// sourcePatterns is checked in order; order matters where domains overlap.
var sourcePatterns = []sourcePattern{
	{"mp.weixin.qq.com", SourceWeChat},
	{"notion.site", SourceNotion},
	{"notion.com", SourceNotion},
	{"zhuanlan.zhihu.com", SourceZhihu},
	{"medium.com", SourceMedium},
}

// ClassifySource assigns a URL to a source variant by substring matching.
// It is total: any URL matching no platform pattern is SourceGeneric.
func ClassifySource(rawURL string) Source {
	for _, p := range sourcePatterns {
		if strings.Contains(rawURL, p.Substring) {
			return p.Source
		}
	}
	return SourceGeneric
}

// SourcePatterns returns the URL substrings recognized per source, in match
// order. Used by the CLI to list supported platforms.
func SourcePatterns() map[Source][]string {
	out := make(map[Source][]string)
	for _, p := range sourcePatterns {
		out[p.Source] = append(out[p.Source], p.Substring)
	}
	return out
}
