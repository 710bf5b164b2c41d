package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderReplyBoldAndBreaks(t *testing.T) {
	got := RenderReply("Activity '**Read**' logged for today.<br>🔥 **Streak Alert!**")

	assert.Contains(t, got, "<strong>Read</strong>")
	assert.Contains(t, got, "<br>")
	assert.NotContains(t, got, "<br/>")
	assert.Contains(t, got, "<strong>Streak Alert!</strong>")
	assert.True(t, strings.HasPrefix(got, "<p>"))
}

func TestRenderReplyStripsScripts(t *testing.T) {
	got := RenderReply("Activity '**<script>alert(1)</script>x**' logged")

	assert.NotContains(t, got, "<script")
	assert.NotContains(t, got, "alert(1)</script>")
}

func TestRenderReplyEmpty(t *testing.T) {
	assert.Equal(t, "", RenderReply("   "))
}

func TestReplyHTML(t *testing.T) {
	assert.Equal(t, "<p><strong>ok</strong></p>", string(ReplyHTML("**ok**")))
}
