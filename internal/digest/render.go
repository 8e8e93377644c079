package digest

import (
	"fmt"
	"strings"

	"github.com/voxay/daybrief/internal/agenda"
)

// renderHTML matches the digest email body the assistant has always sent: a
// heading plus one unordered list, inline styles and all.
func renderHTML(items []agenda.Item) string {
	var b strings.Builder
	b.WriteString("<h2>Your Weekly Agenda</h2>")
	b.WriteString(`<ul style="font-family: Arial; color: #333;">`)
	for _, it := range items {
		fmt.Fprintf(&b, "<li>%s (%s)</li>", it.DisplayText, it.Kind)
	}
	b.WriteString("</ul>")
	return b.String()
}

// renderText is the plain-text variant for notification adapters.
func renderText(items []agenda.Item) string {
	if len(items) == 0 {
		return "Nothing on the agenda."
	}
	lines := make([]string, len(items))
	for i, it := range items {
		lines[i] = fmt.Sprintf("- %s (%s)", it.DisplayText, it.Kind)
	}
	return strings.Join(lines, "\n")
}
