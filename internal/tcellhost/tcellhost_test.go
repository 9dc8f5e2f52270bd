package tcellhost

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/xonecas/glyphgrid/internal/engine"
	"github.com/xonecas/glyphgrid/internal/layout"
	"github.com/xonecas/glyphgrid/internal/synth"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func at(ms int) time.Time { return t0.Add(time.Duration(ms) * time.Millisecond) }

func quietEngine(blocks ...layout.TextBlock) *engine.Engine {
	opts := engine.DefaultOptions()
	opts.Synth.Ramp = "  "
	e := engine.New(opts)
	e.SetBlocks(blocks)
	return e
}

var demoBlocks = []layout.TextBlock{
	{Text: "GLYPHGRID", X: 2, Y: 0, Fixed: true},
	{Text: "[docs](page:docs)", X: 2, Y: 2},
	{Text: "//hello//", X: 2, Y: 4},
}

type fakeNav struct {
	pages map[string][]layout.TextBlock
	calls []string
}

func (n *fakeNav) Navigate(url string) (string, string, []layout.TextBlock, bool) {
	n.calls = append(n.calls, url)
	name, ok := strings.CutPrefix(url, "page:")
	if !ok {
		return "", "", nil, false
	}
	blocks, ok := n.pages[name]
	return name, name, blocks, ok
}

type fakeViews struct{ saved map[string]float64 }

func (v *fakeViews) SaveView(page string, offset float64) { v.saved[page] = offset }

func (v *fakeViews) View(page string) (float64, bool) {
	off, ok := v.saved[page]
	return off, ok
}

func newScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func newHost(t *testing.T, e *engine.Engine, opts Options) (*Host, tcell.SimulationScreen) {
	t.Helper()
	s := newScreen(t, 40, 10)
	h := New(s, e, opts)
	h.resize()
	return h, s
}

// line reads n cells of row y starting at x.
func line(s tcell.Screen, x, y, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		r, comb, _, _ := s.GetContent(x+i, y)
		b.WriteRune(r)
		for _, c := range comb {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func TestDrawPaintsText(t *testing.T) {
	e := quietEngine(demoBlocks...)
	h, s := newHost(t, e, Options{})
	if c, r := e.Size(); c != 40 || r != 10 {
		t.Fatalf("engine size = %dx%d", c, r)
	}
	h.Draw(at(0))

	if got := line(s, 2, 0, 9); got != "GLYPHGRID" {
		t.Errorf("row 0 = %q", got)
	}
	if got := line(s, 2, 2, 4); got != "docs" {
		t.Errorf("row 2 = %q", got)
	}
	if got := line(s, 2, 4, 5); got != "hello" {
		t.Errorf("row 4 = %q", got)
	}

	_, _, st, _ := s.GetContent(3, 2)
	if st != h.styles.link.Url("page:docs") {
		t.Errorf("link cell style = %#v", st)
	}
	_, _, st, _ = s.GetContent(2, 4)
	if _, _, attrs := st.Decompose(); attrs&tcell.AttrItalic == 0 {
		t.Error("italic text lost its attribute")
	}
}

func TestResizeEvent(t *testing.T) {
	e := quietEngine(demoBlocks...)
	h, s := newHost(t, e, Options{})
	s.SetSize(60, 20)
	if h.Handle(tcell.NewEventResize(60, 20), at(0)) {
		t.Fatal("resize should not quit")
	}
	if c, r := e.Size(); c != 60 || r != 20 {
		t.Fatalf("engine size = %dx%d, want 60x20", c, r)
	}
}

func TestLinkClickNavigates(t *testing.T) {
	e := quietEngine(demoBlocks...)
	nav := &fakeNav{pages: map[string][]layout.TextBlock{
		"docs": {{Text: "DOCS PAGE", X: 1, Y: 1}},
	}}
	h, s := newHost(t, e, Options{Page: "home", Navigator: nav})
	h.Draw(at(0))

	h.Handle(tcell.NewEventMouse(3, 2, tcell.Button1, tcell.ModNone), at(100))
	if h.link != "page:docs" {
		t.Fatalf("link = %q", h.link)
	}
	if tr := e.Cursor().Transition; tr == nil || tr.Kind != synth.WhiteOut {
		t.Fatal("whiteout not started")
	}
	h.Handle(tcell.NewEventMouse(3, 2, tcell.ButtonNone, tcell.ModNone), at(150))
	if h.pressed {
		t.Fatal("release not seen")
	}

	h.Draw(at(1000))
	if len(nav.calls) != 1 || h.page != "docs" || h.link != "" {
		t.Fatalf("navigation: calls %v, page %q, link %q", nav.calls, h.page, h.link)
	}

	h.Draw(at(2000))
	if got := line(s, 1, 1, 9); got != "DOCS PAGE" {
		t.Fatalf("row 1 = %q", got)
	}
}

func TestEscapeLeavesExternalLink(t *testing.T) {
	e := quietEngine(layout.TextBlock{Text: "[out](https://example.com)", X: 0, Y: 0})
	h, _ := newHost(t, e, Options{Navigator: &fakeNav{}})
	h.Draw(at(0))
	h.Handle(tcell.NewEventMouse(1, 0, tcell.Button1, tcell.ModNone), at(0))
	h.Draw(at(1000))
	if !e.Cursor().WhiteOverlay || h.link != "https://example.com" {
		t.Fatalf("overlay %v, link %q", e.Cursor().WhiteOverlay, h.link)
	}

	h.Handle(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), at(1100))
	if h.link != "" {
		t.Fatal("esc should drop the link")
	}
	if tr := e.Cursor().Transition; tr == nil || tr.Kind != synth.WhiteIn {
		t.Fatal("esc should start white-in")
	}
}

func TestDragDoesNotRepress(t *testing.T) {
	e := quietEngine(demoBlocks...)
	h, _ := newHost(t, e, Options{})
	h.Handle(tcell.NewEventMouse(30, 6, tcell.Button1, tcell.ModNone), at(0))
	h.Handle(tcell.NewEventMouse(31, 6, tcell.Button1, tcell.ModNone), at(10))
	if got := e.Cursor().Ripples.Len(); got != 1 {
		t.Fatalf("ripples after drag = %d, want 1", got)
	}
	h.Handle(tcell.NewEventMouse(31, 6, tcell.ButtonNone, tcell.ModNone), at(20))
	if got := e.Cursor().Ripples.Len(); got != 2 {
		t.Fatalf("ripples after release = %d, want 2", got)
	}
	if h.link != "" {
		t.Fatal("plain click should not follow a link")
	}
}

func TestWheelScrolls(t *testing.T) {
	e := quietEngine(layout.TextBlock{Text: "end", Y: 100})
	h, _ := newHost(t, e, Options{})
	h.Handle(tcell.NewEventMouse(1, 1, tcell.WheelDown, tcell.ModNone), at(0))
	if got := e.Scroll().Offset(); got != wheelRows {
		t.Fatalf("offset = %v", got)
	}
}

func TestKeys(t *testing.T) {
	e := quietEngine(layout.TextBlock{Text: "end", Y: 100})
	h, _ := newHost(t, e, Options{})
	key := func(k tcell.Key, r rune) bool {
		return h.Handle(tcell.NewEventKey(k, r, tcell.ModNone), at(0))
	}

	key(tcell.KeyPgDn, 0)
	if got := e.Scroll().Offset(); got != 9 {
		t.Fatalf("page down offset = %v, want 9", got)
	}
	key(tcell.KeyRune, 'G')
	if got := e.Scroll().Offset(); got != e.Scroll().MaxScroll() {
		t.Fatalf("bottom offset = %v", got)
	}
	key(tcell.KeyHome, 0)
	if got := e.Scroll().Offset(); got != 0 {
		t.Fatalf("top offset = %v", got)
	}

	key(tcell.KeyRune, 'w')
	if tr := e.Cursor().Transition; tr == nil || tr.Kind != synth.WhiteOut {
		t.Fatal("w should start a whiteout")
	}
	key(tcell.KeyRune, 'w')
	if tr := e.Cursor().Transition; tr == nil || tr.Kind != synth.WhiteIn {
		t.Fatal("w during a whiteout should white back in")
	}

	if !key(tcell.KeyRune, 'q') {
		t.Fatal("q should quit")
	}
	if !key(tcell.KeyCtrlC, 0) {
		t.Fatal("ctrl+c should quit")
	}
}

func TestViewsRestoredAndSaved(t *testing.T) {
	e := quietEngine(layout.TextBlock{Text: "end", Y: 100})
	views := &fakeViews{saved: map[string]float64{}}
	h, _ := newHost(t, e, Options{Page: "home", Offset: 12, Views: views})
	if got := e.Scroll().Offset(); got != 12 {
		t.Fatalf("restored offset = %v", got)
	}
	h.Draw(at(0))
	if views.saved["home"] != 12 {
		t.Fatalf("saved = %v", views.saved)
	}
}

func TestNavigationRestoresViews(t *testing.T) {
	home := []layout.TextBlock{
		{Text: "[docs](page:docs)", X: 2, Y: 2, Fixed: true},
		{Text: "end", Y: 100},
	}
	nav := &fakeNav{pages: map[string][]layout.TextBlock{
		"home": home,
		"docs": {
			{Text: "[home](page:home)", X: 1, Y: 1, Fixed: true},
			{Text: "end", Y: 100},
		},
	}}
	views := &fakeViews{saved: map[string]float64{"docs": 20}}
	e := quietEngine(home...)
	h, _ := newHost(t, e, Options{Page: "home", Views: views, Navigator: nav})
	click := func(x, y, ms int) {
		h.Handle(tcell.NewEventMouse(x, y, tcell.Button1, tcell.ModNone), at(ms))
		h.Handle(tcell.NewEventMouse(x, y, tcell.ButtonNone, tcell.ModNone), at(ms+10))
	}

	h.Draw(at(0))
	e.ScrollTo(30)
	h.Draw(at(50))
	if views.saved["home"] != 30 {
		t.Fatalf("home not saved: %v", views.saved)
	}

	click(3, 2, 100)
	h.Draw(at(1000))
	if h.page != "docs" {
		t.Fatalf("page = %q", h.page)
	}
	if got := e.Scroll().Offset(); got != 20 {
		t.Fatalf("docs offset = %v, want 20", got)
	}

	h.Draw(at(2000))
	click(2, 1, 2100)
	h.Draw(at(3000))
	if h.page != "home" {
		t.Fatalf("page = %q, calls %v", h.page, nav.calls)
	}
	if got := e.Scroll().Offset(); got != 30 {
		t.Fatalf("home offset = %v, want 30", got)
	}
}

func TestRunQuitsOnKey(t *testing.T) {
	e := quietEngine(demoBlocks...)
	s := newScreen(t, 40, 10)
	h := New(s, e, Options{})

	done := make(chan error, 1)
	go func() { done <- h.Run(context.Background()) }()
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after q")
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	e := quietEngine(demoBlocks...)
	s := newScreen(t, 40, 10)
	h := New(s, e, Options{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestColor(t *testing.T) {
	if got := color("12"); got != tcell.PaletteColor(12) {
		t.Errorf("palette = %v", got)
	}
	if got := color("#5f87ff"); got != tcell.NewHexColor(0x5f87ff) {
		t.Errorf("hex = %v", got)
	}
}
