package tui

import (
	tea "charm.land/bubbletea/v2"
)

// handleResize records a window size change. The first size is applied at
// once; later ones settle before the engine relayouts.
func (m *Model) handleResize(msg tea.WindowSizeMsg) tea.Cmd {
	m.width, m.height = msg.Width, msg.Height
	m.help.SetWidth(m.width)
	m.resizeSeq++
	if !m.sized {
		m.applySize()
		return nil
	}
	return resizeTick(m.resizeSeq)
}

// applySize pushes the current surface size to the engine.
func (m *Model) applySize() {
	m.eng.Resize(m.width, m.surfaceRows())
	if !m.sized {
		m.sized = true
		if m.restore > 0 {
			m.eng.ScrollTo(m.restore)
		}
	}
}
