// Package tcellhost drives the renderer directly on a tcell screen, for
// terminals where the bubbletea host is too slow or unavailable.
package tcellhost

import (
	"context"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
	"github.com/rs/zerolog/log"

	"github.com/xonecas/glyphgrid/internal/constants"
	"github.com/xonecas/glyphgrid/internal/engine"
	"github.com/xonecas/glyphgrid/internal/layout"
	"github.com/xonecas/glyphgrid/internal/synth"
)

const wheelRows = 3

// Navigator resolves a clicked link to another page.
type Navigator interface {
	Navigate(url string) (page, title string, blocks []layout.TextBlock, ok bool)
}

// ViewStore remembers the scroll position of a page.
type ViewStore interface {
	View(page string) (float64, bool)
	SaveView(page string, offset float64)
}

// Options configures a Host.
type Options struct {
	Page      string
	Offset    float64
	LinkColor string
	Views     ViewStore
	Navigator Navigator
}

// Host owns the screen and the event loop.
type Host struct {
	screen tcell.Screen
	eng    *engine.Engine
	styles styles

	page     string
	link     string
	restore  float64
	restored bool
	savedRow int
	pressed  bool

	views ViewStore
	nav   Navigator
}

// New creates a host painting eng onto screen. The screen must already be
// initialized.
func New(screen tcell.Screen, eng *engine.Engine, opts Options) *Host {
	return &Host{
		screen:   screen,
		eng:      eng,
		styles:   newStyles(opts.LinkColor),
		page:     opts.Page,
		restore:  opts.Offset,
		savedRow: -1,
		views:    opts.Views,
		nav:      opts.Navigator,
	}
}

// Run paints frames and handles input until ctx is cancelled or the user
// quits.
func (h *Host) Run(ctx context.Context) error {
	h.screen.EnableMouse(tcell.MouseMotionEvents)
	h.screen.HideCursor()
	h.resize()

	events := make(chan tcell.Event, 32)
	quit := make(chan struct{})
	go h.screen.ChannelEvents(events, quit)
	defer close(quit)

	ticker := time.NewTicker(h.eng.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if h.Handle(ev, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			h.Draw(now)
		}
	}
}

// resize hands the screen size to the engine and restores the saved scroll
// position on the first call.
func (h *Host) resize() {
	w, ht := h.screen.Size()
	h.eng.Resize(w, ht)
	if !h.restored {
		h.restored = true
		if h.restore > 0 {
			h.eng.ScrollTo(h.restore)
		}
	}
}

// Handle applies one input event. It reports whether the host should exit.
func (h *Host) Handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		h.resize()
		h.screen.Sync()
	case *tcell.EventKey:
		return h.handleKey(ev, now)
	case *tcell.EventMouse:
		h.handleMouse(ev, now)
	}
	return false
}

func (h *Host) handleKey(ev *tcell.EventKey, now time.Time) bool {
	_, rows := h.eng.Size()
	page := float64(max(rows-1, 1))

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return true
	case tcell.KeyEscape, tcell.KeyBackspace, tcell.KeyBackspace2:
		if h.eng.Cursor().WhiteOverlay || h.link != "" {
			h.link = ""
			h.eng.StartWhiteIn(now)
		}
	case tcell.KeyUp:
		h.eng.Wheel(-1, now)
	case tcell.KeyDown:
		h.eng.Wheel(1, now)
	case tcell.KeyPgUp:
		h.eng.ScrollBy(-page)
	case tcell.KeyPgDn:
		h.eng.ScrollBy(page)
	case tcell.KeyHome:
		h.eng.ScrollTo(0)
	case tcell.KeyEnd:
		h.eng.ScrollTo(h.eng.Scroll().MaxScroll())
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return true
		case 'w':
			h.toggleWhite(now)
		case 'k':
			h.eng.Wheel(-1, now)
		case 'j':
			h.eng.Wheel(1, now)
		case ' ', 'f':
			h.eng.ScrollBy(page)
		case 'b':
			h.eng.ScrollBy(-page)
		case 'g':
			h.eng.ScrollTo(0)
		case 'G':
			h.eng.ScrollTo(h.eng.Scroll().MaxScroll())
		}
	}
	return false
}

func (h *Host) toggleWhite(now time.Time) {
	cur := h.eng.Cursor()
	if cur.WhiteOverlay || (cur.Transition != nil && cur.Transition.Kind == synth.WhiteOut) {
		h.link = ""
		h.eng.StartWhiteIn(now)
		return
	}
	h.eng.StartWhiteOut(now)
}

// handleMouse turns tcell's button state into press and release edges.
func (h *Host) handleMouse(ev *tcell.EventMouse, now time.Time) {
	x, y := ev.Position()
	btn := ev.Buttons()

	switch {
	case btn&tcell.WheelUp != 0:
		h.eng.Wheel(-wheelRows, now)
		return
	case btn&tcell.WheelDown != 0:
		h.eng.Wheel(wheelRows, now)
		return
	}

	h.eng.PointerMove(x, y)
	down := btn&tcell.Button1 != 0
	switch {
	case down && !h.pressed:
		h.pressed = true
		h.eng.PointerDown(x, y, now)
		if r, ok := h.eng.HitTest(x, y); ok {
			h.link = r.URL
			h.eng.StartWhiteOut(now)
			log.Info().Str("url", r.URL).Msg("link clicked")
		}
	case !down && h.pressed:
		h.pressed = false
		h.eng.PointerUp(x, y, now)
	}
}

// Draw paints a frame if one is due, then follows a pending link and
// records the scroll position.
func (h *Host) Draw(now time.Time) {
	if f, ok := h.eng.Frame(now); ok {
		h.paint(f)
		h.screen.Show()
	}
	h.followLink(now)
	h.saveView()
}

func (h *Host) paint(f *engine.Frame) {
	for y := 0; y < f.Rows; y++ {
		row := f.Row(y)
		skip := 0
		for x, g := range row {
			if skip > 0 {
				skip--
				continue
			}
			rs := []rune(g.Char)
			if len(rs) == 0 {
				rs = []rune{' '}
			}
			h.screen.SetContent(x, y, rs[0], rs[1:], h.styles.glyph(g))
			if w := uniseg.StringWidth(g.Char); w > 1 {
				skip = w - 1
			}
		}
	}
	for _, l := range f.Links {
		for x := max(l.StartX, 0); x <= l.EndX && x < f.Cols; x++ {
			mainc, comb, st, _ := h.screen.GetContent(x, l.Y)
			h.screen.SetContent(x, l.Y, mainc, comb, st.Url(l.URL))
		}
	}
}

func (h *Host) followLink(now time.Time) {
	if h.link == "" || !h.eng.Cursor().WhiteOverlay || h.nav == nil {
		return
	}
	url := h.link
	page, _, blocks, ok := h.nav.Navigate(url)
	if !ok {
		return
	}
	h.link = ""
	h.page = page
	h.eng.SetBlocks(blocks)
	off := 0.0
	if h.views != nil {
		off, _ = h.views.View(page)
	}
	h.eng.ScrollTo(off)
	h.savedRow = -1
	h.eng.StartWhiteIn(now)
	log.Info().Str("url", url).Str("page", page).Msg("navigated")
}

func (h *Host) saveView() {
	if h.views == nil || h.page == "" {
		return
	}
	sc := h.eng.Scroll()
	if sc.Moving() || sc.Row() == h.savedRow {
		return
	}
	h.savedRow = sc.Row()
	h.views.SaveView(h.page, sc.Offset())
}

type styles struct {
	field, blob, text, red, link tcell.Style
}

func newStyles(linkColor string) styles {
	if linkColor == "" {
		linkColor = constants.LinkColor
	}
	base := tcell.StyleDefault
	return styles{
		field: base.Foreground(tcell.GetColor("#5f5f87")),
		blob:  base.Foreground(tcell.GetColor("#8787af")),
		text:  base.Foreground(tcell.GetColor("#e4e4e4")),
		red:   base.Foreground(tcell.GetColor(constants.RedColor)),
		link:  base.Foreground(color(linkColor)).Underline(true),
	}
}

// color accepts a palette index as well as names and hex values.
func color(s string) tcell.Color {
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < 256 {
		return tcell.PaletteColor(n)
	}
	return tcell.GetColor(s)
}

func (s styles) glyph(g synth.Glyph) tcell.Style {
	switch g.Layer {
	case synth.LayerField:
		return s.field
	case synth.LayerBlob:
		return s.blob
	case synth.LayerText:
	default:
		return tcell.StyleDefault
	}
	st := s.text
	switch {
	case g.Style&synth.Link != 0:
		st = s.link
	case g.Style&synth.Red != 0:
		st = s.red
	}
	return st.Bold(g.Style&synth.Bold != 0).Italic(g.Style&synth.Italic != 0)
}
