package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/hylla/cards/internal/modal"
)

// markdownRenderer caches a glamour renderer per wrap width.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

// render converts markdown to styled terminal text, falling back to the raw input.
func (r *markdownRenderer) render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}

	wrapWidth := max(24, width)
	if r.renderer == nil || r.width != wrapWidth {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(wrapWidth),
		)
		if err != nil {
			return markdown
		}
		r.renderer = renderer
		r.width = wrapWidth
	}

	rendered, err := r.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.Trim(rendered, "\n")
}

// detailMarkdown formats a task detail payload.
func detailMarkdown(d modal.Detail) string {
	if !d.Found {
		return fmt.Sprintf("_Task no longer exists._\n\n- **Date:** %s\n- **Time:** %s\n", d.Date, d.Time)
	}
	status := "active"
	if d.Completed {
		status = "completed"
	}
	var b strings.Builder
	b.WriteString(d.Text)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "- **Date:** %s\n", d.Date)
	fmt.Fprintf(&b, "- **Time:** %s\n", d.Time)
	fmt.Fprintf(&b, "- **Status:** %s\n", status)
	return b.String()
}
