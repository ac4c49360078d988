package tui

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

type rendererKey struct {
	style string
	width int
}

// descRenderers holds one glamour renderer per style and wrap width. Styles are chosen
// explicitly: auto-style queries the terminal background and can hang.
var descRenderers = struct {
	sync.Mutex
	byKey map[rendererKey]*glamour.TermRenderer
}{byKey: map[rendererKey]*glamour.TermRenderer{}}

func descRenderer(k rendererKey) (*glamour.TermRenderer, error) {
	descRenderers.Lock()
	defer descRenderers.Unlock()
	if r, ok := descRenderers.byKey[k]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(glamour.WithStandardStyle(k.style), glamour.WithWordWrap(k.width))
	if err != nil {
		return nil, fmt.Errorf("markdown renderer %s/%d: %w", k.style, k.width, err)
	}
	descRenderers.byKey[k] = r
	return r, nil
}

// renderMarkdown renders an item description for the detail pane. On any renderer
// failure it falls back to the plain text, word-wrapped.
func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	width = max(width, 10)

	r, err := descRenderer(rendererKey{style: markdownStyle(), width: width})
	if err == nil {
		if out, rerr := r.Render(md); rerr == nil {
			return strings.Trim(out, "\n")
		}
	}
	return strings.Join(wrapWords(md, width), "\n")
}
