package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
)

// ---------------------------------------------------------------------------
// Mouse filter: throttle high-frequency events at program level.
// ---------------------------------------------------------------------------

var lastMouseEvent time.Time

// MouseEventFilter rate-limits wheel and motion events (15 ms).
// Pass to tea.WithFilter. Never drops clicks or releases.
func MouseEventFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	switch msg.(type) {
	case tea.MouseWheelMsg, tea.MouseMotionMsg:
		now := time.Now()
		if now.Sub(lastMouseEvent) < 15*time.Millisecond {
			return nil
		}
		lastMouseEvent = now
	}
	return msg
}

// ---------------------------------------------------------------------------
// Mouse handling
// ---------------------------------------------------------------------------

// mouseXY extracts X, Y from any mouse message via the MouseMsg interface.
func mouseXY(msg tea.MouseMsg) (int, int) {
	m := msg.Mouse()
	return m.X, m.Y
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := mouseXY(msg)
	now := m.clock()

	// The status line is not part of the surface.
	if y >= m.surfaceRows() {
		m.eng.PointerLeave()
		return m, nil
	}

	switch ev := msg.(type) {
	case tea.MouseMotionMsg:
		m.eng.PointerMove(x, y)
	case tea.MouseClickMsg:
		if ev.Button != tea.MouseLeft {
			return m, nil
		}
		m.eng.PointerDown(x, y, now)
		if r, ok := m.eng.HitTest(x, y); ok {
			return m, m.openLink(r.URL, now)
		}
	case tea.MouseReleaseMsg:
		m.eng.PointerUp(x, y, now)
	case tea.MouseWheelMsg:
		switch ev.Button {
		case tea.MouseWheelUp:
			m.eng.Wheel(-wheelRows, now)
		case tea.MouseWheelDown:
			m.eng.Wheel(wheelRows, now)
		}
	}
	return m, nil
}

// openLink starts the whiteout that precedes following url.
func (m *Model) openLink(url string, now time.Time) tea.Cmd {
	m.link = url
	m.eng.StartWhiteOut(now)
	log.Info().Str("url", url).Msg("link clicked")
	return linkCmd(url)
}
