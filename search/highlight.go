package search

import (
	"html"
	"strings"

	"github.com/meigma/crx/pattern"
)

// HighlightHTML returns line with every match of pat wrapped in
// <mark> tags.
//
// All text is HTML-escaped before the tags are inserted, so the result
// is safe to render verbatim. A line with no matches comes back fully
// escaped with no tags.
func HighlightHTML(line string, pat *pattern.Content) string {
	spans := pat.Spans(line)
	if len(spans) == 0 {
		return html.EscapeString(line)
	}

	var sb strings.Builder
	prev := 0
	for _, span := range spans {
		sb.WriteString(html.EscapeString(line[prev:span[0]]))
		sb.WriteString("<mark>")
		sb.WriteString(html.EscapeString(line[span[0]:span[1]]))
		sb.WriteString("</mark>")
		prev = span[1]
	}
	sb.WriteString(html.EscapeString(line[prev:]))
	return sb.String()
}
