// Package engine owns the renderer state and turns host input into frames.
//
// An Engine is created once, fed text blocks and viewport changes, and
// asked for a frame on every repaint opportunity. Every mutation goes
// through an entry point on the Engine; nothing is global. It is not safe
// for concurrent use: the host calls it from its UI loop only.
package engine

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/xonecas/glyphgrid/internal/blob"
	"github.com/xonecas/glyphgrid/internal/font"
	"github.com/xonecas/glyphgrid/internal/layout"
	"github.com/xonecas/glyphgrid/internal/links"
	"github.com/xonecas/glyphgrid/internal/scheduler"
	"github.com/xonecas/glyphgrid/internal/scroll"
	"github.com/xonecas/glyphgrid/internal/synth"
)

// Options configures an Engine.
type Options struct {
	FPS    int
	Settle time.Duration
	// Aspect is terminal cell height over width.
	Aspect float64

	Synth  synth.Options
	Blob   blob.Options
	Scroll scroll.Options

	MaxRipples     int
	RippleLifespan time.Duration
	// HoldMax is the press duration at which a ripple reaches full strength.
	HoldMax time.Duration

	TransitionDuration time.Duration
	CacheSize          int

	// Fonts defaults to the built-in registry.
	Fonts *font.Registry
}

// DefaultOptions returns the stock configuration.
func DefaultOptions() Options {
	return Options{
		FPS:                scheduler.DefaultFPS,
		Settle:             scheduler.DefaultSettle,
		Aspect:             2,
		Synth:              synth.DefaultOptions(),
		Blob:               blob.DefaultOptions(),
		Scroll:             scroll.DefaultOptions(),
		MaxRipples:         synth.DefaultMaxRipples,
		RippleLifespan:     1200 * time.Millisecond,
		HoldMax:            time.Second,
		TransitionDuration: 700 * time.Millisecond,
		CacheSize:          synth.DefaultCacheSize,
	}
}

// Engine is the renderer state: layout, links, mask, scroll, cursor,
// ripples, caches and pacing.
type Engine struct {
	opts Options

	layout *layout.Engine
	synth  *synth.Synthesizer
	sched  *scheduler.Scheduler
	scroll *scroll.Controller
	cursor *synth.CursorState
	cache  *synth.FrameCache

	blocks      []layout.TextBlock
	cols, rows  int
	fingerprint string
	result      *layout.Result
	links       *links.Registry
	mask        *blob.Mask
	chunkDirty  bool

	start    time.Time
	pressAt  time.Time
	pressing bool
	seq      uint64
	out      Frame
}

// New returns an engine with an empty document and a zero viewport.
func New(opts Options) *Engine {
	d := DefaultOptions()
	if opts.Aspect <= 0 {
		opts.Aspect = d.Aspect
	}
	if opts.RippleLifespan <= 0 {
		opts.RippleLifespan = d.RippleLifespan
	}
	if opts.HoldMax <= 0 {
		opts.HoldMax = d.HoldMax
	}
	if opts.TransitionDuration <= 0 {
		opts.TransitionDuration = d.TransitionDuration
	}

	le := layout.New()
	if opts.Fonts != nil {
		le.Fonts = opts.Fonts
	}
	e := &Engine{
		opts:   opts,
		layout: le,
		synth:  synth.New(opts.Synth),
		sched:  scheduler.New(opts.FPS, opts.Settle),
		scroll: scroll.New(opts.Scroll),
		cursor: synth.NewCursorState(opts.MaxRipples),
		cache:  synth.NewFrameCache(opts.CacheSize),
	}
	e.scroll.OnChunk = func(prev, next int) {
		e.chunkDirty = true
		log.Debug().Int("from", prev).Int("to", next).Msg("scroll chunk changed")
	}
	e.relayout()
	return e
}

// seconds converts a host timestamp to engine time. The first timestamp
// seen is time zero.
func (e *Engine) seconds(now time.Time) float64 {
	if e.start.IsZero() {
		e.start = now
	}
	return now.Sub(e.start).Seconds()
}

// SetBlocks replaces the document. Identical input is a no-op.
func (e *Engine) SetBlocks(blocks []layout.TextBlock) {
	e.blocks = append(e.blocks[:0:0], blocks...)
	e.relayout()
}

// Resize sets the viewport in cells.
func (e *Engine) Resize(cols, rows int) {
	if cols == e.cols && rows == e.rows {
		return
	}
	e.cols, e.rows = max(cols, 0), max(rows, 0)
	if e.cursor.InWindow {
		e.cursor.Move(e.cursor.X, e.cursor.Y, e.cols, e.rows)
	}
	e.sched.Start()
	e.relayout()
}

// Size returns the viewport in cells.
func (e *Engine) Size() (cols, rows int) { return e.cols, e.rows }

func (e *Engine) relayout() {
	fp := layout.Fingerprint(e.blocks, e.cols, e.rows)
	if e.result != nil && fp == e.fingerprint {
		log.Debug().Str("fingerprint", fp).Msg("layout unchanged")
		return
	}
	e.fingerprint = fp
	e.result = e.layout.Layout(e.blocks, e.cols, e.rows)
	for _, w := range e.result.Warnings {
		log.Warn().Str("block", w.Key).Str("kind", w.Kind.String()).Str("detail", w.Detail).Msg("layout warning")
	}
	e.links = links.New(e.result.Links)
	e.scroll.SetRange(e.result.ContentRows, e.rows)
	e.cache.Reset()
	e.rebuildMask()
	log.Debug().
		Int("blocks", len(e.blocks)).
		Int("cells", e.result.Cells.Len()).
		Int("links", e.links.Len()).
		Int("content_rows", e.result.ContentRows).
		Msg("layout done")
}

func (e *Engine) rebuildMask() {
	start := time.Now()
	e.mask = blob.Build(e.result.Cells, e.scroll.Row(), e.cols, e.rows, e.opts.Blob)
	e.chunkDirty = false
	e.sched.Cancel()
	log.Debug().
		Int("points", e.mask.Points()).
		Int("tiles", e.mask.Tiles()).
		Int("scroll_row", e.scroll.Row()).
		Dur("took", time.Since(start)).
		Msg("blob mask rebuilt")
}

// Result returns the current layout.
func (e *Engine) Result() *layout.Result { return e.result }

// Warnings returns the current layout's warnings.
func (e *Engine) Warnings() []layout.Warning { return e.result.Warnings }

// Cursor exposes the cursor state for inspection.
func (e *Engine) Cursor() *synth.CursorState { return e.cursor }

// Scroll exposes the scroll controller for inspection.
func (e *Engine) Scroll() *scroll.Controller { return e.scroll }

// --- Pointer ---

// PointerMove tracks the pointer at screen cell (x, y).
func (e *Engine) PointerMove(x, y int) {
	e.cursor.Move(x, y, e.cols, e.rows)
}

// PointerLeave marks the pointer as outside the surface.
func (e *Engine) PointerLeave() {
	e.cursor.Leave()
	e.pressing = false
}

// PointerDown starts a press: a light ripple now, a stronger one on release.
func (e *Engine) PointerDown(x, y int, now time.Time) {
	e.cursor.Move(x, y, e.cols, e.rows)
	e.cursor.Active = true
	e.pressing = true
	e.pressAt = now
	e.addRipple(x, y, now, 0.8, 1)
}

// PointerUp ends a press. The longer it was held the stronger, longer
// lived and slower the release ripple.
func (e *Engine) PointerUp(x, y int, now time.Time) {
	e.cursor.Move(x, y, e.cols, e.rows)
	e.cursor.Active = false
	if !e.pressing {
		return
	}
	e.pressing = false
	hold := min(float64(now.Sub(e.pressAt))/float64(e.opts.HoldMax), 1)
	e.addRipple(x, y, now, 1+hold, 1+hold)
}

func (e *Engine) addRipple(x, y int, now time.Time, intensity, life float64) {
	e.cursor.Ripples.Add(synth.ClickRipple{
		X:           x,
		Y:           y,
		Born:        e.seconds(now),
		Lifespan:    e.opts.RippleLifespan.Seconds() * life,
		Intensity:   intensity,
		SpeedFactor: 1 / (0.5 + 0.5*life),
	})
}

// HitTest returns the link under screen cell (x, y). Nothing is clickable
// while a transition runs or the surface is whited out.
func (e *Engine) HitTest(x, y int) (links.Rect, bool) {
	if e.linksInert() {
		return links.Rect{}, false
	}
	return e.links.HitTest(x, y, e.scroll.Row())
}

// Links returns the links visible at the current scroll position.
func (e *Engine) Links() []links.Rect {
	if e.linksInert() {
		return nil
	}
	return e.links.Rects(e.scroll.Row(), e.rows)
}

func (e *Engine) linksInert() bool {
	return e.cursor.WhiteOverlay || e.cursor.Transition != nil
}

// --- Scroll ---

// Wheel scrolls by delta rows.
func (e *Engine) Wheel(delta float64, now time.Time) {
	e.scroll.Wheel(delta, now)
}

// ScrollBy jumps by delta rows without momentum.
func (e *Engine) ScrollBy(delta float64) {
	e.scroll.SetOffset(e.scroll.Offset() + delta)
}

// ScrollTo jumps to offset rows, clamped to the content.
func (e *Engine) ScrollTo(offset float64) {
	e.scroll.SetOffset(offset)
}

// TouchStart begins a touch at screen cell (x, y).
func (e *Engine) TouchStart(x, y int, now time.Time) {
	e.scroll.TouchStart(float64(y), now)
	e.cursor.Move(x, y, e.cols, e.rows)
	e.cursor.Active = true
	e.addRipple(x, y, now, 1, 1)
}

// TouchMove drags to screen cell (x, y).
func (e *Engine) TouchMove(x, y int, now time.Time) {
	e.scroll.TouchMove(float64(y), now)
	e.cursor.Move(x, y, e.cols, e.rows)
}

// TouchEnd lifts the touch.
func (e *Engine) TouchEnd(now time.Time) {
	e.scroll.TouchEnd(now)
	e.cursor.Active = false
}

// --- Transitions ---

// StartWhiteOut dissolves the surface from the pointer outward. When it
// completes the surface stays blank until StartWhiteIn.
func (e *Engine) StartWhiteOut(now time.Time) {
	e.cursor.WhiteOverlay = false
	e.cursor.Transition = &synth.Transition{
		Kind:     synth.WhiteOut,
		Start:    e.seconds(now),
		Duration: e.opts.TransitionDuration.Seconds(),
		CX:       e.cursor.NX,
		CY:       e.cursor.NY,
	}
	log.Info().Float64("cx", e.cursor.NX).Float64("cy", e.cursor.NY).Msg("whiteout started")
}

// StartWhiteIn redraws the surface from the edges toward the centre.
func (e *Engine) StartWhiteIn(now time.Time) {
	e.cursor.WhiteOverlay = false
	e.cursor.Transition = &synth.Transition{
		Kind:     synth.WhiteIn,
		Start:    e.seconds(now),
		Duration: e.opts.TransitionDuration.Seconds(),
	}
	log.Info().Msg("white-in started")
}

// --- Frames ---

// Stop halts frame production, for teardown.
func (e *Engine) Stop() { e.sched.Stop() }

// Interval returns the target frame interval.
func (e *Engine) Interval() time.Duration { return e.sched.Interval() }

// Frame synthesizes the surface if a frame is due at now. The returned
// Frame is reused by the next call.
func (e *Engine) Frame(now time.Time) (*Frame, bool) {
	if !e.sched.Due(now) {
		return nil, false
	}
	return e.render(now), true
}

// Render synthesizes a frame at now regardless of pacing.
func (e *Engine) Render(now time.Time) *Frame {
	return e.render(now)
}

func (e *Engine) render(now time.Time) *Frame {
	e.scroll.Tick(now)
	t := e.seconds(now)
	e.advanceTransition(t)
	e.cursor.Ripples.Prune(t)

	if e.chunkDirty {
		e.chunkDirty = false
		e.sched.Invalidate(now)
	}
	row := e.scroll.Row()
	if e.sched.Poll(now) || !e.mask.Covers(row, row+e.rows) {
		e.rebuildMask()
	}

	e.seq++
	e.cache.Reset()
	env := &synth.Env{
		Cols:      e.cols,
		Rows:      e.rows,
		Aspect:    e.opts.Aspect,
		Time:      t,
		ScrollRow: row,
		FrameSeed: uint32(e.seq),
		Cursor:    e.cursor,
		Text:      e.result.Cells,
		Mask:      e.mask,
	}
	tier := scheduler.TierFor(e.scroll.Velocity())

	f := &e.out
	f.resize(e.cols, e.rows)
	f.Tier = tier
	f.ScrollRow = row
	f.Seq = e.seq
	e.fill(f, env, tier)
	f.Links = append(f.Links, e.Links()...)
	return f
}

func (e *Engine) advanceTransition(t float64) {
	tr := e.cursor.Transition
	if tr == nil || !tr.Done(t) {
		return
	}
	e.cursor.Transition = nil
	if tr.Kind == synth.WhiteOut {
		e.cursor.WhiteOverlay = true
	}
	log.Info().Str("kind", tr.Kind.String()).Msg("transition finished")
}

// fill evaluates every cell. Under scroll load only every skip-th column
// and the first row of each row chunk are synthesized; the rest copy the
// last computed glyph to their left or the glyph above. Text cells are
// always evaluated.
func (e *Engine) fill(f *Frame, env *synth.Env, tier scheduler.Tier) {
	skip, chunk := tier.Skip(), tier.RowChunk()
	for y := 0; y < f.Rows; y++ {
		top := y - y%chunk
		out := f.Cells[y*f.Cols : (y+1)*f.Cols]
		last, have := synth.Blank, false
		for x := 0; x < f.Cols; x++ {
			switch {
			case e.hasText(x, y, env.ScrollRow):
				out[x] = e.synth.Cached(e.cache, x, y, env)
			case y != top && f.Cells[top*f.Cols+x].Layer != synth.LayerText:
				out[x] = f.Cells[top*f.Cols+x]
			case x%skip != 0 && have:
				out[x] = last
			default:
				out[x] = e.synth.Cached(e.cache, x, y, env)
				last, have = out[x], true
			}
		}
	}
}

func (e *Engine) hasText(x, y, scrollRow int) bool {
	cells := e.result.Cells
	if c, ok := cells.At(x, y); ok && c.Fixed {
		return true
	}
	c, ok := cells.At(x, y+scrollRow)
	return ok && !c.Fixed
}
