package search

import "github.com/charmbracelet/lipgloss"

// HighlightStyle is the style applied to matched substrings in both live
// and dig mode.
var HighlightStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("0")).
	Background(lipgloss.Color("11"))

// Highlight renders body with every occurrence of query wrapped in
// HighlightStyle. The second return is false when query does not occur
// (or is empty), in which case the body is returned unchanged.
func Highlight(body, query string) (string, bool) {
	if query == "" {
		return body, false
	}
	spans := findSpans(body, query)
	if spans == nil {
		return body, false
	}
	return renderSpans(body, spans), true
}

// renderSpans rebuilds body with the given spans styled.
func renderSpans(body string, spans [][2]int) string {
	var b []byte
	prev := 0
	for _, span := range spans {
		b = append(b, body[prev:span[0]]...)
		b = append(b, HighlightStyle.Render(body[span[0]:span[1]])...)
		prev = span[1]
	}
	b = append(b, body[prev:]...)
	return string(b)
}

// Render returns the display form of a match's body, spans styled.
func (m Match) Render() string {
	if len(m.Spans) == 0 {
		return m.Record.Body
	}
	return renderSpans(m.Record.Body, m.Spans)
}
