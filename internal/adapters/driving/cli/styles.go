package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/cantus-corpus/internal/core/domain"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true)
	labelStyle   = lipgloss.NewStyle().Faint(true)
	opStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("4"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// kv is one label and value line of a summary block.
type kv struct {
	label string
	value any
}

// renderSummary renders a heading followed by aligned label/value lines.
func renderSummary(title string, rows []kv) string {
	width := 0
	for _, r := range rows {
		width = max(width, lipgloss.Width(r.label))
	}
	var b strings.Builder
	b.WriteString(headingStyle.Render(title))
	b.WriteString("\n")
	for _, r := range rows {
		label := labelStyle.Render(r.label + ":")
		pad := strings.Repeat(" ", width-lipgloss.Width(r.label)+1)
		fmt.Fprintf(&b, "  %s%s%v\n", label, pad, r.value)
	}
	return b.String()
}

// renderHistory renders each operation name followed by its indented
// parameters.
func renderHistory(entries []domain.HistoryEntry) string {
	if len(entries) == 0 {
		return labelStyle.Render("(no operations)") + "\n"
	}
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(opStyle.Render(e.Operation()))
		b.WriteString("\n")
		for _, line := range strings.Split(e.Parameters(), "\n") {
			b.WriteString("  " + line + "\n")
		}
	}
	return b.String()
}
