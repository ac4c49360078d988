package tui

import (
	"strings"
	"testing"

	xansi "github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestNormalizePane_FixedSize(t *testing.T) {
	out := normalizePane("short\na much longer line than fits", 10, 3)
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 3)
	for _, ln := range lines {
		assert.Equal(t, 10, xansi.StringWidth(ln), "%q", ln)
	}
	assert.True(t, strings.HasSuffix(lines[1], "…"))
}

func TestWrapWords(t *testing.T) {
	assert.Equal(t, []string{"one two", "three"}, wrapWords("one two three", 8))
	assert.Equal(t, []string{"abcd", "efgh", "ij"}, wrapWords("abcdefghij", 4))
	assert.Equal(t, []string{""}, wrapWords("   ", 4))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 3))
	assert.Equal(t, "", truncate("abc", 0))
}
