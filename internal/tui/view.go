package tui

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/xonecas/glyphgrid/internal/engine"
	"github.com/xonecas/glyphgrid/internal/synth"
)

// ---------------------------------------------------------------------------
// View
// ---------------------------------------------------------------------------

func (m Model) View() tea.View {
	v := tea.NewView(m.renderContent())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeAllMotion
	v.WindowTitle = m.title
	return v
}

// renderContent produces the string content for the view.
func (m Model) renderContent() string {
	if m.width == 0 {
		return ""
	}
	if !m.showStatus {
		return m.surface
	}
	var b strings.Builder
	b.WriteString(m.surface)
	if m.surface != "" {
		b.WriteByte('\n')
	}
	m.renderStatusBar(&b)
	return b.String()
}

// renderFrame paints a frame as styled rows. Cells sharing a layer, style
// and link are emitted as one run; link runs are wrapped in OSC 8
// hyperlinks. A wide cluster swallows the cells it overlaps.
func renderFrame(f *engine.Frame, st Styles) string {
	var b strings.Builder
	urls := make([]string, f.Cols)
	for y := 0; y < f.Rows; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		clear(urls)
		for _, l := range f.Links {
			if l.Y != y {
				continue
			}
			for x := max(l.StartX, 0); x <= l.EndX && x < f.Cols; x++ {
				urls[x] = l.URL
			}
		}
		renderRow(&b, f.Row(y), urls, st)
	}
	return b.String()
}

type runKey struct {
	layer synth.Layer
	style synth.Style
	url   string
}

func renderRow(b *strings.Builder, row []synth.Glyph, urls []string, st Styles) {
	var run strings.Builder
	var cur runKey
	flush := func() {
		if run.Len() == 0 {
			return
		}
		if cur.url != "" {
			b.WriteString(ansi.SetHyperlink(cur.url))
		}
		b.WriteString(st.glyph(cur.layer, cur.style).Render(run.String()))
		if cur.url != "" {
			b.WriteString(ansi.ResetHyperlink())
		}
		run.Reset()
	}

	skip := 0
	for x, g := range row {
		if skip > 0 {
			skip--
			continue
		}
		k := runKey{layer: g.Layer, style: g.Style, url: urls[x]}
		if g.Layer != synth.LayerText {
			// Background runs differ only in color, not per-cell flags.
			k.style = 0
		}
		if k != cur {
			flush()
			cur = k
		}
		run.WriteString(g.Char)
		if w := ansi.StringWidth(g.Char); w > 1 {
			skip = w - 1
		}
	}
	flush()
}
