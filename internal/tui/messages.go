package tui

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// ---------------------------------------------------------------------------
// ELM messages
// ---------------------------------------------------------------------------

// tickMsg drives the frame loop at the engine's cadence.
type tickMsg time.Time

// resizeMsg applies a settled window size. Stale sequence numbers are
// dropped so a drag-resize relayouts once.
type resizeMsg struct{ seq int }

// LinkMsg reports a clicked link. Exported so embedders can observe it.
type LinkMsg struct{ URL string }

// ---------------------------------------------------------------------------
// ELM commands
// ---------------------------------------------------------------------------

// resizeDebounce is how long the window size must hold before relayout.
const resizeDebounce = 80 * time.Millisecond

// frameTick returns a command that fires a tickMsg after d.
func frameTick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func resizeTick(seq int) tea.Cmd {
	return tea.Tick(resizeDebounce, func(time.Time) tea.Msg {
		return resizeMsg{seq: seq}
	})
}

func linkCmd(url string) tea.Cmd {
	return func() tea.Msg { return LinkMsg{URL: url} }
}
