package tui

import (
	"strings"
	"sync"

	"charm.land/glamour/v2"
	"charm.land/lipgloss/v2"
)

const maxMarkdownWidth = 100

// renderers caches one glamour renderer per wrap width.
var (
	renderersMu sync.Mutex
	renderers   = map[int]*glamour.TermRenderer{}
)

func markdownRenderer(width int) (*glamour.TermRenderer, error) {
	renderersMu.Lock()
	defer renderersMu.Unlock()

	if r, ok := renderers[width]; ok {
		return r, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	renderers[width] = r
	return r, nil
}

// renderMarkdown renders markdown with the dark glamour style, wrapped to
// width. Plain wrapped text is returned if glamour fails.
func renderMarkdown(content string, width int) string {
	width = min(width, maxMarkdownWidth)

	r, err := markdownRenderer(width)
	if err != nil {
		return wrapText(content, width)
	}
	rendered, err := r.Render(content)
	if err != nil {
		return wrapText(content, width)
	}
	return strings.Trim(rendered, "\n")
}

// wrapText wraps plain text to width.
func wrapText(content string, width int) string {
	if width <= 0 {
		return content
	}
	return lipgloss.NewStyle().Width(width).Render(content)
}
