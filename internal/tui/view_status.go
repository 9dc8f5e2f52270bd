package tui

import (
	"strings"

	"charm.land/lipgloss/v2"
)

// renderStatusBar writes the status line: page on the left, or the link
// being followed, and the key summary on the right.
func (m Model) renderStatusBar(b *strings.Builder) {
	var left string
	if m.link != "" {
		left = m.styles.StatusText.Render(" → ") + m.styles.StatusURL.Render(m.link)
	} else {
		label := " " + m.title
		if m.page != "" && m.page != m.title {
			label += " · " + m.page
		}
		left = m.styles.StatusText.Render(label)
	}
	leftW := lipgloss.Width(left)

	h := m.help
	h.SetWidth(max(m.width-leftW-2, 0))
	right := h.ShortHelpView(m.keys.ShortHelp())
	rightW := lipgloss.Width(right)

	gap := m.width - leftW - rightW - 1
	if gap < 0 {
		gap = 0
	}
	b.WriteString(left)
	b.WriteString(m.styles.BgFill.Render(strings.Repeat(" ", gap)))
	b.WriteString(right)
	b.WriteString(m.styles.BgFill.Render(" "))
}
