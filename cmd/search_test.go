package cmd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPreviewFlattensWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", preview("a\n  b\t c", 80))
}

func TestPreviewTruncatesLongContent(t *testing.T) {
	long := strings.Repeat("x", 100)
	got := preview(long, 20)

	assert.Equal(t, 20, len([]rune(got)))
	assert.True(t, strings.HasSuffix(got, "…"))
}

func TestPreviewShortContentUnchanged(t *testing.T) {
	assert.Equal(t, "short", preview("short", 20))
}
