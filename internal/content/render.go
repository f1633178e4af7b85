// Package content turns user supplied note text into safe HTML.
package content

import (
	"bytes"
	"html/template"
	"log/slog"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdown goldmark.Markdown
	policy   *bluemonday.Policy
	initOnce sync.Once
)

func setup() {
	initOnce.Do(func() {
		// Raw HTML in notes is escaped by goldmark; bluemonday is the final gate
		markdown = goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Strikethrough),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		)
		policy = bluemonday.UGCPolicy()
		policy.RequireNoFollowOnLinks(true)
		policy.AddTargetBlankToFullyQualifiedLinks(true)
		policy.AllowURLSchemes("http", "https", "nostr")
	})
}

// Render converts note text to sanitized HTML
func Render(text string) template.HTML {
	text = strings.TrimSpace(text)
	if text == "" {
		return ""
	}
	setup()

	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		slog.Debug("markdown conversion failed, escaping", "error", err)
		return template.HTML(template.HTMLEscapeString(text))
	}
	return template.HTML(policy.SanitizeBytes(buf.Bytes()))
}
