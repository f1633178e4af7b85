package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderMarkdown(t *testing.T) {
	out := string(Render("**bold** and ~~gone~~"))
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<del>gone</del>")
}

func TestRenderLinkifies(t *testing.T) {
	out := string(Render("see https://example.com/pic.jpg"))
	assert.Contains(t, out, `href="https://example.com/pic.jpg"`)
	assert.Contains(t, out, "nofollow")
}

func TestRenderStripsScripts(t *testing.T) {
	out := string(Render(`hi <script>alert(1)</script> [x](javascript:alert(1))`))
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "javascript:")
}

func TestRenderHardWraps(t *testing.T) {
	out := string(Render("line one\nline two"))
	assert.True(t, strings.Contains(out, "<br>") || strings.Contains(out, "<br/>") || strings.Contains(out, "<br />"))
}

func TestRenderEmpty(t *testing.T) {
	assert.Empty(t, Render("   "))
}
