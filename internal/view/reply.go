package view

import (
	"bytes"
	"html/template"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	replyEngine = goldmark.New(
		goldmark.WithExtensions(extension.Linkify),
		// 回复文本内含 <br>，需要保留原始 HTML，随后统一交给 sanitizer 过滤
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	replySanitizer = buildReplySanitizer()
)

func buildReplySanitizer() *bluemonday.Policy {
	policy := bluemonday.NewPolicy()
	policy.AllowElements("p", "br", "strong", "em", "ul", "ol", "li", "code")
	policy.AllowStandardURLs()
	policy.AllowAttrs("href").OnElements("a")
	policy.RequireNoFollowOnLinks(true)
	return policy
}

// RenderReply 将聊天回复中的 Markdown 渲染为安全的 HTML 片段。
// 活动名称来自用户输入，渲染结果一律经过 bluemonday 过滤。
func RenderReply(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := replyEngine.Convert([]byte(trimmed), &buf); err != nil {
		return template.HTMLEscapeString(trimmed)
	}

	return strings.TrimSpace(replySanitizer.Sanitize(buf.String()))
}

// ReplyHTML 供模板直接输出已过滤的回复
func ReplyHTML(text string) template.HTML {
	return template.HTML(RenderReply(text))
}
