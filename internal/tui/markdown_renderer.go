package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/ebenmoss/remedy/internal/domain"
)

// markdownRenderer renders markdown for terminal views and recreates the renderer when wrap width changes.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
}

// render converts markdown input into ANSI-styled terminal text with the requested wrap width.
func (r *markdownRenderer) render(markdown string, width int) string {
	markdown = strings.TrimSpace(markdown)
	if markdown == "" {
		return ""
	}

	wrapWidth := width
	if wrapWidth < 24 {
		wrapWidth = 24
	}

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
	return strings.TrimRight(rendered, "\n")
}

// provenanceMarkdown builds the markdown block shown in the detail panel
// for a complaint-sourced task.
func provenanceMarkdown(p domain.Provenance) string {
	var b strings.Builder
	if quote := strings.TrimSpace(p.Quote); quote != "" {
		b.WriteString("> " + quote + "\n")
	}
	if p.Mentions > 0 {
		fmt.Fprintf(&b, "\nMentioned in **%d** reviews.\n", p.Mentions)
	}
	if inspiration := strings.TrimSpace(p.Inspiration); inspiration != "" {
		b.WriteString("\n_" + inspiration + "_\n")
	}
	if len(p.Citations) > 0 {
		b.WriteString("\nSources: `" + strings.Join(p.Citations, "` `") + "`\n")
	}
	return strings.TrimSpace(b.String())
}
