package tui

import (
	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/xonecas/glyphgrid/internal/synth"
)

// handleKeyPress processes key events. Returns (model, cmd, true) if handled.
func (m *Model) handleKeyPress(msg tea.KeyPressMsg) (Model, tea.Cmd, bool) {
	now := m.clock()
	rows := float64(max(m.surfaceRows()-1, 1))

	switch {
	case key.Matches(msg, m.keys.Quit):
		return *m, tea.Quit, true
	case key.Matches(msg, m.keys.WhiteOut):
		cur := m.eng.Cursor()
		if cur.WhiteOverlay || (cur.Transition != nil && cur.Transition.Kind == synth.WhiteOut) {
			m.link = ""
			m.eng.StartWhiteIn(now)
		} else {
			m.eng.StartWhiteOut(now)
		}
	case key.Matches(msg, m.keys.Back):
		if !m.eng.Cursor().WhiteOverlay && m.link == "" {
			return Model{}, nil, false
		}
		m.link = ""
		m.eng.StartWhiteIn(now)
	case key.Matches(msg, m.keys.Up):
		m.eng.Wheel(-1, now)
	case key.Matches(msg, m.keys.Down):
		m.eng.Wheel(1, now)
	case key.Matches(msg, m.keys.PageUp):
		m.eng.ScrollBy(-rows)
	case key.Matches(msg, m.keys.PageDown):
		m.eng.ScrollBy(rows)
	case key.Matches(msg, m.keys.Top):
		m.eng.ScrollTo(0)
	case key.Matches(msg, m.keys.Bottom):
		m.eng.ScrollTo(m.eng.Scroll().MaxScroll())
	case key.Matches(msg, m.keys.Status):
		m.showStatus = !m.showStatus
		if m.sized {
			m.applySize()
		}
	default:
		return Model{}, nil, false
	}
	return *m, nil, true
}
