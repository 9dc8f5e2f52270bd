package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog/log"
)

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	// -- Window resize -------------------------------------------------------
	case tea.WindowSizeMsg:
		return m, m.handleResize(msg)
	case resizeMsg:
		if msg.seq == m.resizeSeq {
			m.applySize()
		}
		return m, nil

	// -- Frame loop ----------------------------------------------------------
	case tickMsg:
		return m.handleTick(time.Time(msg))

	// -- Mouse ---------------------------------------------------------------
	case tea.MouseMsg:
		return m.handleMouse(msg)

	// -- Keyboard ------------------------------------------------------------
	case tea.KeyPressMsg:
		if mdl, cmd, handled := m.handleKeyPress(msg); handled {
			return mdl, cmd
		}

	case LinkMsg:
		return m, nil
	}

	return m, nil
}

// handleTick renders a frame if one is due, then runs the post-frame
// bookkeeping and schedules the next tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if f, ok := m.eng.Frame(now); ok {
		m.surface = renderFrame(f, m.styles)
	}
	m.followLink(now)
	m.saveView()
	return m, frameTick(m.eng.Interval())
}

// followLink navigates once the whiteout for a clicked link has finished.
func (m *Model) followLink(now time.Time) {
	if m.link == "" || !m.eng.Cursor().WhiteOverlay || m.nav == nil {
		return
	}
	url := m.link
	page, title, blocks, ok := m.nav.Navigate(url)
	if !ok {
		return
	}
	m.link = ""
	m.page, m.title = page, title
	m.eng.SetBlocks(blocks)
	m.eng.ScrollTo(m.viewOffset(page))
	m.savedRow = -1
	m.eng.StartWhiteIn(now)
	log.Info().Str("url", url).Str("page", page).Msg("navigated")
}

// viewOffset returns where page was last left, or the top.
func (m *Model) viewOffset(page string) float64 {
	if m.views == nil {
		return 0
	}
	off, _ := m.views.View(page)
	return off
}

// saveView records the scroll row of the current page once motion stops.
func (m *Model) saveView() {
	if m.views == nil || m.page == "" || !m.sized {
		return
	}
	sc := m.eng.Scroll()
	if sc.Moving() || sc.Row() == m.savedRow {
		return
	}
	m.savedRow = sc.Row()
	m.views.SaveView(m.page, sc.Offset())
}
