package entities

import (
	"html"
	"html/template"
	"strings"
)

// Highlight escapes text and wraps every located entity in a labelled
// <mark>. Entities must be ordered by Start; overlapping ones are skipped.
func Highlight(text string, ents []Entity) template.HTML {
	var b strings.Builder
	last := 0
	for _, e := range ents {
		if e.Start < last || e.End > len(text) || e.Start >= e.End {
			continue
		}
		b.WriteString(html.EscapeString(text[last:e.Start]))

		label := html.EscapeString(e.Label)
		b.WriteString(`<mark class="ent ent-`)
		b.WriteString(label)
		b.WriteString(`">`)
		b.WriteString(html.EscapeString(text[e.Start:e.End]))
		b.WriteString(`<span>`)
		b.WriteString(label)
		b.WriteString(`</span></mark>`)
		last = e.End
	}
	b.WriteString(html.EscapeString(text[last:]))

	return template.HTML(b.String())
}
